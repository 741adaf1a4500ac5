package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults for the scan settings.
const (
	DefaultMarker     = "editorial use only"
	DefaultTextFilter = "123rf"
)

// Config holds application configuration.
type Config struct {
	Port           int
	Marker         string
	TextLinkFilter string
	VerifyRemote   bool
	HTTPTimeout    time.Duration
	MaxUploadBytes int64
	MaxRows        int
}

// fileConfig mirrors the optional TOML config file. Pointer fields
// distinguish "absent" from zero values.
type fileConfig struct {
	Port *int           `toml:"port"`
	Scan fileScanConfig `toml:"scan"`
}

type fileScanConfig struct {
	Marker         *string `toml:"marker"`
	TextLinkFilter *string `toml:"text_link_filter"`
	VerifyRemote   *bool   `toml:"verify_remote"`
	MaxRows        *int    `toml:"max_rows"`
}

// Load parses flags, then the optional config file, then environment
// overrides, in increasing precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	var configFile string

	flag.IntVar(&cfg.Port, "port", 8080, "HTTP server port")
	flag.StringVar(&configFile, "config", "", "TOML config file path")
	flag.StringVar(&cfg.Marker, "marker", DefaultMarker, "Restricted-use marker phrase")
	flag.StringVar(&cfg.TextLinkFilter, "text-link-filter", DefaultTextFilter, "Substring plain-text URL candidates must contain (empty disables)")
	flag.BoolVar(&cfg.VerifyRemote, "verify-remote", false, "Verify each extracted link against its live page")
	flag.DurationVar(&cfg.HTTPTimeout, "http-timeout", 30*time.Second, "Timeout for outgoing document requests")
	flag.Int64Var(&cfg.MaxUploadBytes, "max-upload", 10<<20, "Maximum upload size in bytes")
	flag.IntVar(&cfg.MaxRows, "max-rows", 200, "Maximum rows per uploaded workbook")
	flag.Parse()

	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.Marker == "" {
		return nil, fmt.Errorf("marker phrase must not be empty")
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	c.apply(fc)
	return nil
}

func (c *Config) apply(fc fileConfig) {
	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.Scan.Marker != nil {
		c.Marker = *fc.Scan.Marker
	}
	if fc.Scan.TextLinkFilter != nil {
		c.TextLinkFilter = *fc.Scan.TextLinkFilter
	}
	if fc.Scan.VerifyRemote != nil {
		c.VerifyRemote = *fc.Scan.VerifyRemote
	}
	if fc.Scan.MaxRows != nil {
		c.MaxRows = *fc.Scan.MaxRows
	}
}

func (c *Config) applyEnv() {
	if port := os.Getenv("EDLINKS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}
	if marker := os.Getenv("EDLINKS_MARKER"); marker != "" {
		c.Marker = marker
	}
	if filter, ok := os.LookupEnv("EDLINKS_TEXT_LINK_FILTER"); ok {
		c.TextLinkFilter = filter
	}
	if timeout := os.Getenv("EDLINKS_HTTP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.HTTPTimeout = d
		}
	}
}
