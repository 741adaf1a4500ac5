package gdocs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/Shiningstar2501/editoriallinks/internal/domain"
)

// HTTPClient is the outgoing-request surface the fetcher needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var docIDPattern = regexp.MustCompile(`https://docs\.google\.com/document/d/([a-zA-Z0-9_-]+)`)

const (
	exportURLFormat = "https://docs.google.com/document/d/%s/export?format=pdf"
	userAgent       = "Mozilla/5.0"

	// maxDocumentBytes caps how much of an export response is read.
	maxDocumentBytes = 64 << 20
)

// Fetcher downloads the PDF export of a Google Docs document.
type Fetcher struct {
	client HTTPClient
}

// New creates a Fetcher. A nil client falls back to a default
// http.Client with a 30s timeout.
func New(client HTTPClient) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// FileID derives the stable document identifier from a Google Docs URL.
func FileID(docURL string) (string, bool) {
	m := docIDPattern.FindStringSubmatch(docURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Fetch retrieves the document's PDF export. Every failure is reported
// as a *domain.FetchError; there are no retries.
func (f *Fetcher) Fetch(ctx context.Context, docURL string) ([]byte, error) {
	id, ok := FileID(docURL)
	if !ok {
		return nil, &domain.FetchError{Ref: docURL, Err: domain.ErrBadReference}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(exportURLFormat, id), nil)
	if err != nil {
		return nil, &domain.FetchError{Ref: docURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Ref: docURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{Ref: docURL, Err: fmt.Errorf("export returned status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, &domain.FetchError{Ref: docURL, Err: err}
	}

	// A permission-denied export comes back as an HTML page, not a PDF.
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, &domain.FetchError{Ref: docURL, Err: errors.New("export is not a PDF (document may not be shared)")}
	}

	return data, nil
}
