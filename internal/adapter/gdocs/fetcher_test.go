package gdocs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Shiningstar2501/editoriallinks/internal/domain"
)

// mockClient implements HTTPClient for testing.
type mockClient struct {
	lastURL string
	resp    *http.Response
	err     error
}

func (m *mockClient) Do(req *http.Request) (*http.Response, error) {
	m.lastURL = req.URL.String()
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func pdfResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestFileID(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		wantID string
		wantOK bool
	}{
		{"plain document URL", "https://docs.google.com/document/d/abc123XYZ_-/edit", "abc123XYZ_-", true},
		{"URL without suffix", "https://docs.google.com/document/d/fileID42", "fileID42", true},
		{"not a docs URL", "https://example.com/document/d/abc", "", false},
		{"spreadsheet URL", "https://docs.google.com/spreadsheets/d/abc", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := FileID(tt.in)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("FileID(%q) = (%q, %v), want (%q, %v)", tt.in, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestFetcher_Fetch_Success(t *testing.T) {
	client := &mockClient{resp: pdfResponse(http.StatusOK, "%PDF-1.4 fake body")}
	f := New(client)

	data, err := f.Fetch(context.Background(), "https://docs.google.com/document/d/abc123/edit")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "%PDF-1.4 fake body" {
		t.Errorf("Fetch() = %q, want document bytes", data)
	}

	wantURL := "https://docs.google.com/document/d/abc123/export?format=pdf"
	if client.lastURL != wantURL {
		t.Errorf("requested URL = %q, want %q", client.lastURL, wantURL)
	}
}

func TestFetcher_Fetch_MalformedReference(t *testing.T) {
	f := New(&mockClient{})

	_, err := f.Fetch(context.Background(), "https://example.com/not-a-doc")
	if err == nil {
		t.Fatal("Fetch() error = nil, want FetchError")
	}

	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want *domain.FetchError", err)
	}
	if !errors.Is(err, domain.ErrBadReference) {
		t.Errorf("error = %v, want wrapped ErrBadReference", err)
	}
}

func TestFetcher_Fetch_RemoteFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *mockClient
	}{
		{"network error", &mockClient{err: errors.New("connection refused")}},
		{"non-200 status", &mockClient{resp: pdfResponse(http.StatusForbidden, "")}},
		{"HTML instead of PDF", &mockClient{resp: pdfResponse(http.StatusOK, "<html>sign in</html>")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.client)
			_, err := f.Fetch(context.Background(), "https://docs.google.com/document/d/abc123")
			if err == nil {
				t.Fatal("Fetch() error = nil, want FetchError")
			}
			var fetchErr *domain.FetchError
			if !errors.As(err, &fetchErr) {
				t.Errorf("error type = %T, want *domain.FetchError", err)
			}
		})
	}
}
