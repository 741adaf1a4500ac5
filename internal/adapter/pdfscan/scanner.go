package pdfscan

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Shiningstar2501/editoriallinks/internal/domain"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// trailingPunct is stripped from URL-shaped text matches; sentence
// punctuation right after a link is not part of it.
const trailingPunct = `.,;:)]'"`

// Scanner extracts restricted-use links from raw PDF bytes. It is a
// pure function over the bytes: nothing is written and nothing is
// cached between calls.
type Scanner struct {
	marker     string
	textFilter string
}

// New creates a Scanner. marker is the restricted-use phrase a page
// must contain (matched case-insensitively). textFilter, when
// non-empty, restricts plain-text URL candidates to those containing
// it; hyperlink annotations are never filtered.
func New(marker, textFilter string) *Scanner {
	return &Scanner{marker: strings.ToLower(marker), textFilter: textFilter}
}

// Scan walks the document page by page. A page contributes links only
// when its text carries the marker phrase: first the page's link
// annotations, then URL-shaped substrings of its text, with duplicates
// within the page skipped. Invalid PDF bytes yield a *domain.ParseError.
func (s *Scanner) Scan(data []byte) (links []domain.ExtractedLink, err error) {
	// The underlying reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			links = nil
			err = &domain.ParseError{Err: fmt.Errorf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}

	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page whose text cannot be decoded cannot carry the marker.
			continue
		}
		if !strings.Contains(strings.ToLower(text), s.marker) {
			continue
		}

		seen := make(map[string]bool)
		emit := func(url string) {
			if url == "" || seen[url] {
				return
			}
			seen[url] = true
			links = append(links, domain.ExtractedLink{URL: url, Page: n})
		}

		for _, url := range annotationLinks(page) {
			emit(url)
		}
		for _, url := range s.textLinks(text) {
			emit(url)
		}
	}

	return links, nil
}

// annotationLinks collects the target URLs of the page's link
// annotations, in annotation order.
func annotationLinks(page pdf.Page) []string {
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var urls []string
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Kind() != pdf.Dict {
			continue
		}
		action := annot.Key("A")
		if action.Kind() != pdf.Dict {
			continue
		}
		uri := action.Key("URI")
		if uri.Kind() != pdf.String {
			continue
		}
		urls = append(urls, uri.RawString())
	}
	return urls
}

// textLinks collects URL-shaped substrings of the page text, applying
// the configured filter.
func (s *Scanner) textLinks(text string) []string {
	var urls []string
	for _, match := range urlPattern.FindAllString(text, -1) {
		url := strings.TrimRight(match, trailingPunct)
		if s.textFilter != "" && !strings.Contains(url, s.textFilter) {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
