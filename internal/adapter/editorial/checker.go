package editorial

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// HTTPClient is the outgoing-request surface the checker needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker fetches a candidate link and reports whether the live page
// still carries the restricted-use marker phrase.
type Checker struct {
	client HTTPClient
	marker string
}

// New creates a Checker. A nil client falls back to a default
// http.Client with a 15s timeout.
func New(client HTTPClient, marker string) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Checker{client: client, marker: strings.ToLower(marker)}
}

// RestrictedUse downloads the page at url and searches its visible
// text for the marker, case-insensitively.
func (c *Checker) RestrictedUse(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("check %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return false, fmt.Errorf("check %s: parse page: %w", url, err)
	}

	return strings.Contains(strings.ToLower(doc.Text()), c.marker), nil
}
