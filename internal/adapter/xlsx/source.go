package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Shiningstar2501/editoriallinks/internal/domain"
)

// Required column headers in the uploaded workbook's first sheet.
const (
	DocColumn  = "Google Docs URL"
	SiteColumn = "Website URL"
)

// Source reads (document URL, site URL) rows from an uploaded .xlsx
// workbook. Only the first sheet is read; the first row must be a
// header row naming DocColumn and SiteColumn.
type Source struct{}

// New creates a Source.
func New() *Source {
	return &Source{}
}

// Rows parses the workbook. Fully blank rows are dropped; rows with
// one missing cell are kept so the pipeline can record an error for
// them. Column order in the sheet does not matter.
func (s *Source) Rows(r io.Reader) ([]domain.Row, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	cells, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, errors.New("workbook is empty")
	}

	docCol, siteCol := -1, -1
	for i, header := range cells[0] {
		switch strings.TrimSpace(header) {
		case DocColumn:
			docCol = i
		case SiteColumn:
			siteCol = i
		}
	}
	if docCol < 0 || siteCol < 0 {
		return nil, fmt.Errorf("workbook must have %q and %q columns", DocColumn, SiteColumn)
	}

	var rows []domain.Row
	for _, line := range cells[1:] {
		var row domain.Row
		if docCol < len(line) {
			row.DocURL = strings.TrimSpace(line[docCol])
		}
		if siteCol < len(line) {
			row.SiteURL = strings.TrimSpace(line[siteCol])
		}
		if row.DocURL == "" && row.SiteURL == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
