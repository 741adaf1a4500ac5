package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func defaultConfig() *Config {
	return &Config{
		Port:           8080,
		Marker:         DefaultMarker,
		TextLinkFilter: DefaultTextFilter,
		HTTPTimeout:    30 * time.Second,
		MaxUploadBytes: 10 << 20,
		MaxRows:        200,
	}
}

func TestConfig_ApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edlinks.toml")
	content := `
port = 9090

[scan]
marker = "not for commercial use"
verify_remote = true
max_rows = 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg := defaultConfig()
	if err := cfg.applyFile(path); err != nil {
		t.Fatalf("applyFile() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Marker != "not for commercial use" {
		t.Errorf("Marker = %q, want overridden value", cfg.Marker)
	}
	if !cfg.VerifyRemote {
		t.Error("VerifyRemote = false, want true")
	}
	if cfg.MaxRows != 10 {
		t.Errorf("MaxRows = %d, want 10", cfg.MaxRows)
	}
	// Fields absent from the file keep their defaults.
	if cfg.TextLinkFilter != DefaultTextFilter {
		t.Errorf("TextLinkFilter = %q, want default %q", cfg.TextLinkFilter, DefaultTextFilter)
	}
}

func TestConfig_ApplyFile_Missing(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.applyFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("applyFile() error = nil, want read error")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("EDLINKS_PORT", "7070")
	t.Setenv("EDLINKS_MARKER", "restricted")
	t.Setenv("EDLINKS_TEXT_LINK_FILTER", "")
	t.Setenv("EDLINKS_HTTP_TIMEOUT", "5s")

	cfg := defaultConfig()
	cfg.applyEnv()

	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Port)
	}
	if cfg.Marker != "restricted" {
		t.Errorf("Marker = %q, want %q", cfg.Marker, "restricted")
	}
	if cfg.TextLinkFilter != "" {
		t.Errorf("TextLinkFilter = %q, want empty (filter disabled)", cfg.TextLinkFilter)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
}

func TestConfig_ApplyEnv_IgnoresBadValues(t *testing.T) {
	t.Setenv("EDLINKS_PORT", "not-a-number")
	t.Setenv("EDLINKS_HTTP_TIMEOUT", "soon")

	cfg := defaultConfig()
	cfg.applyEnv()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Port)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want default 30s", cfg.HTTPTimeout)
	}
}
