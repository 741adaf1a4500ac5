package domain

import (
	"strings"
	"testing"
)

func TestSiteLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips https scheme", "https://example.com/page", "example.com_page"},
		{"strips http scheme", "http://example.com", "example.com"},
		{"replaces unsafe characters", `a<b>c:d"e|f?g*h`, "a_b_c_d_e_f_g_h"},
		{"trims whitespace", "  https://example.com  ", "example.com"},
		{"empty becomes Untitled", "", "Untitled"},
		{"whitespace only becomes Untitled", "   ", "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SiteLabel(tt.in); got != tt.want {
				t.Errorf("SiteLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSiteLabel_CapsLength(t *testing.T) {
	long := "https://" + strings.Repeat("a", 500)
	got := SiteLabel(long)
	if len(got) != 200 {
		t.Errorf("len(SiteLabel(long)) = %d, want 200", len(got))
	}
}

func TestResultRecord_DisplaySite(t *testing.T) {
	rec := ResultRecord{Site: "example.com_blog_post"}
	if got, want := rec.DisplaySite(), "example.com/blog/post"; got != want {
		t.Errorf("DisplaySite() = %q, want %q", got, want)
	}
}

func TestResultRecord_Failed(t *testing.T) {
	if (ResultRecord{}).Failed() {
		t.Error("empty record reported as failed")
	}
	if !(ResultRecord{Err: "boom"}).Failed() {
		t.Error("record with error not reported as failed")
	}
}
