// Package config loads the site manifest. Everything has a working
// default so the server runs from a bare checkout.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site is the site manifest, read from site.yaml.
type Site struct {
	Title        string   `yaml:"title"`
	Origin       string   `yaml:"origin"`
	ContentDir   string   `yaml:"content_dir"`
	LocalesDir   string   `yaml:"locales_dir"`
	TemplatesDir string   `yaml:"templates_dir"`
	PublicDir    string   `yaml:"public_dir"`
	DefaultLang  string   `yaml:"default_lang"`
	Languages    []string `yaml:"languages"`
}

// Default returns the manifest used when no site.yaml exists.
func Default() *Site {
	return &Site{
		Title:        "Kifuliiru",
		Origin:       "https://kifuliiru.net",
		ContentDir:   "content",
		LocalesDir:   "locales",
		TemplatesDir: "templates",
		PublicDir:    "public",
		DefaultLang:  "kif",
		Languages:    []string{"kif", "en", "fr", "sw"},
	}
}

// Load reads the manifest at path, filling unset fields with defaults.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Site, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Site) fillDefaults() {
	def := Default()
	if strings.TrimSpace(c.Title) == "" {
		c.Title = def.Title
	}
	if strings.TrimSpace(c.Origin) == "" {
		c.Origin = def.Origin
	}
	if strings.TrimSpace(c.ContentDir) == "" {
		c.ContentDir = def.ContentDir
	}
	if strings.TrimSpace(c.LocalesDir) == "" {
		c.LocalesDir = def.LocalesDir
	}
	if strings.TrimSpace(c.TemplatesDir) == "" {
		c.TemplatesDir = def.TemplatesDir
	}
	if strings.TrimSpace(c.PublicDir) == "" {
		c.PublicDir = def.PublicDir
	}
	if strings.TrimSpace(c.DefaultLang) == "" {
		c.DefaultLang = def.DefaultLang
	}
	if len(c.Languages) == 0 {
		c.Languages = def.Languages
	}
}
