package domain

import (
	"regexp"
	"strings"
)

// Row is one validated spreadsheet entry: the document to scan and the
// site it was collected for.
type Row struct {
	DocURL  string
	SiteURL string
}

// ExtractedLink is a URL found on a restricted-use page, paired with
// the 1-based number of that page.
type ExtractedLink struct {
	URL  string `json:"url"`
	Page int    `json:"page"`
}

// ResultRecord is the outcome of processing one Row. A failed row
// carries an error message and no links; a succeeded row carries zero
// or more links and no error.
type ResultRecord struct {
	Site  string          `json:"site"`
	Links []ExtractedLink `json:"links"`
	Err   string          `json:"error,omitempty"`
}

// Failed reports whether the row's pipeline ended in an error.
func (r ResultRecord) Failed() bool {
	return r.Err != ""
}

// DisplaySite returns the label shown to the reader, with the
// underscore substitutions from SiteLabel folded back to slashes.
func (r ResultRecord) DisplaySite() string {
	return strings.ReplaceAll(r.Site, "_", "/")
}

const maxLabelLen = 200

var unsafeLabelChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SiteLabel converts a site URL into a safe display label: scheme
// stripped, reserved filename characters replaced, capped in length.
func SiteLabel(siteURL string) string {
	label := strings.TrimSpace(siteURL)
	label = strings.TrimPrefix(label, "https://")
	label = strings.TrimPrefix(label, "http://")
	label = unsafeLabelChars.ReplaceAllString(label, "_")
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen]
	}
	if label == "" {
		return "Untitled"
	}
	return label
}
