package domain

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// Collector runs the fetch-then-scan pipeline over spreadsheet rows.
// Rows are processed one at a time, in input order; a row failure is
// recorded on its ResultRecord and never aborts the batch.
type Collector struct {
	fetcher DocumentFetcher
	scanner LinkScanner
	checker UsageChecker // nil disables remote verification
}

// NewCollector creates a Collector. checker may be nil.
func NewCollector(fetcher DocumentFetcher, scanner LinkScanner, checker UsageChecker) *Collector {
	return &Collector{fetcher: fetcher, scanner: scanner, checker: checker}
}

// Process returns exactly one ResultRecord per Row, in input order.
func (c *Collector) Process(ctx context.Context, rows []Row) []ResultRecord {
	records := make([]ResultRecord, 0, len(rows))
	for i, row := range rows {
		rec := c.processRow(ctx, row)
		if rec.Failed() {
			log.Warn("row failed", "row", i+1, "site", rec.Site, "err", rec.Err)
		} else {
			log.Info("row scanned", "row", i+1, "site", rec.Site, "links", len(rec.Links))
		}
		records = append(records, rec)
	}
	return records
}

func (c *Collector) processRow(ctx context.Context, row Row) ResultRecord {
	rec := ResultRecord{Site: SiteLabel(row.SiteURL)}

	if strings.TrimSpace(row.DocURL) == "" || strings.TrimSpace(row.SiteURL) == "" {
		rec.Err = "row is missing a document URL or site URL"
		return rec
	}

	data, err := c.fetcher.Fetch(ctx, row.DocURL)
	if err != nil {
		rec.Err = err.Error()
		return rec
	}

	links, err := c.scanner.Scan(data)
	if err != nil {
		rec.Err = err.Error()
		return rec
	}

	if c.checker != nil {
		links = c.verify(ctx, links)
	}

	rec.Links = links
	return rec
}

// verify keeps only links whose live page still carries the
// restricted-use marker. A link whose page cannot be fetched is
// dropped, not treated as a row failure.
func (c *Collector) verify(ctx context.Context, links []ExtractedLink) []ExtractedLink {
	var kept []ExtractedLink
	for _, link := range links {
		restricted, err := c.checker.RestrictedUse(ctx, link.URL)
		if err != nil {
			log.Debug("verification failed, dropping link", "url", link.URL, "err", err)
			continue
		}
		if restricted {
			kept = append(kept, link)
		}
	}
	return kept
}
