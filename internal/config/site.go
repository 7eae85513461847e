package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site describes the published site: feed metadata and the content collections
type Site struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"site"`
	Author      string   `yaml:"author"`
	Collections []string `yaml:"collections"`
}

// DefaultSite returns the built-in site settings
func DefaultSite() Site {
	return Site{
		Title:       "劝退师说",
		Description: "AI Agents · LLM 工具链 · 分布式",
		URL:         "https://chixitown.com",
		Author:      "劝退师",
		Collections: []string{"tech", "life", "books", "games"},
	}
}

// LoadSite reads the YAML site file at path on top of the defaults.
// A missing file is not an error.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("read site config: %w", err)
	}

	if err := yaml.Unmarshal(data, &site); err != nil {
		return site, fmt.Errorf("parse site config %s: %w", path, err)
	}
	if err := site.Validate(); err != nil {
		return site, fmt.Errorf("site config %s: %w", path, err)
	}
	return site, nil
}

// Validate checks the site URL and collection names
func (s Site) Validate() error {
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site must be an absolute URL, got %q", s.URL)
	}
	if len(s.Collections) == 0 {
		return fmt.Errorf("at least one collection is required")
	}
	for _, name := range s.Collections {
		if name == "" || strings.ContainsAny(name, `/\.`) {
			return fmt.Errorf("invalid collection name %q", name)
		}
	}
	return nil
}

// Link joins a site-relative path onto the site URL
func (s Site) Link(path string) string {
	return strings.TrimRight(s.URL, "/") + "/" + strings.TrimLeft(path, "/")
}

// HasCollection reports whether name is a configured collection
func (s Site) HasCollection(name string) bool {
	for _, c := range s.Collections {
		if c == name {
			return true
		}
	}
	return false
}
