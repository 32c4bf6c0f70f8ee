package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the export settings. Values come from an optional TOML file
// and are overridden by command-line flags.
//
// Example file:
//
//	format = "jpeg"
//	jpeg_quality = 85
//	workers = 4
//	preview_width = 1280
type Config struct {
	Workers      int    `toml:"workers"` // 0 means GOMAXPROCS
	Format       string `toml:"format"`  // png, jpeg or bmp
	JPEGQuality  int    `toml:"jpeg_quality"`
	PreviewWidth int    `toml:"preview_width"` // 0 keeps native size
}

func defaultConfig() Config {
	return Config{
		Format:      "png",
		JPEGQuality: 90,
	}
}

// loadConfig decodes a TOML file over cfg. Keys it does not know are
// returned so the caller can warn about them.
func loadConfig(path string, cfg *Config) ([]string, error) {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return unknown, nil
}

var errConfig = errors.New("invalid config")

func (c *Config) validate() error {
	c.Format = strings.ToLower(c.Format)
	if c.Format == "jpg" {
		c.Format = "jpeg"
	}
	switch c.Format {
	case "png", "jpeg", "bmp":
	default:
		return fmt.Errorf("%w: format %q (want png, jpeg or bmp)", errConfig, c.Format)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg_quality %d (want 1-100)", errConfig, c.JPEGQuality)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", errConfig, c.Workers)
	}
	if c.PreviewWidth < 0 {
		return fmt.Errorf("%w: preview_width %d", errConfig, c.PreviewWidth)
	}
	return nil
}

// ext returns the output file extension for the configured format.
func (c Config) ext() string {
	if c.Format == "jpeg" {
		return "jpg"
	}
	return c.Format
}
