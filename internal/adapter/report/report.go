package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Shiningstar2501/editoriallinks/internal/domain"
)

// Build renders a batch of scan results as a PDF document, one block
// per row in result order.
func Build(records []domain.ResultRecord) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Arial", "B", 14)
	p.Cell(40, 10, "Editorial-use link scan")
	p.Ln(12)

	for _, rec := range records {
		p.SetFont("Arial", "B", 11)
		p.MultiCell(0, 7, rec.DisplaySite(), "", "L", false)

		p.SetFont("Arial", "", 10)
		switch {
		case rec.Failed():
			p.MultiCell(0, 6, fmt.Sprintf("error: %s", rec.Err), "", "L", false)
		case len(rec.Links) == 0:
			p.MultiCell(0, 6, "no restricted-use links found", "", "L", false)
		default:
			for _, link := range rec.Links {
				p.MultiCell(0, 6, fmt.Sprintf("p.%d  %s", link.Page, link.URL), "", "L", false)
			}
		}
		p.Ln(4)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
