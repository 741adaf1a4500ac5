package domain

import (
	"context"
	"io"
)

// RowSource is the driven port for reading uploaded spreadsheets.
type RowSource interface {
	Rows(r io.Reader) ([]Row, error)
}

// DocumentFetcher retrieves the page-rendered (PDF) form of a document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, docURL string) ([]byte, error)
}

// LinkScanner walks rendered document bytes and returns every
// restricted-use link in page order, then in-page discovery order.
type LinkScanner interface {
	Scan(data []byte) ([]ExtractedLink, error)
}

// UsageChecker verifies a candidate link against its live page.
type UsageChecker interface {
	RestrictedUse(ctx context.Context, url string) (bool, error)
}
