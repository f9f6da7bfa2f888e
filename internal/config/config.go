// Package config holds the single-file YAML configuration. Loading is
// explicit: libraries receive values, they never read files or the
// process environment themselves. Environment fallbacks happen only in
// the command layer's flag defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/mdpub/internal/toc"
)

// FileConfig is the configuration schema. Nested sections map naturally
// to subcommands and flags.
type FileConfig struct {
	Toc struct {
		IndentChars  string `yaml:"indentChars"`
		IndentSpaces int    `yaml:"indentSpaces"`
		MaxLevel     int    `yaml:"maxLevel"`
		// Pointer so an absent key keeps the default of true.
		TrimIndent *bool `yaml:"trimIndent"`
	} `yaml:"toc"`

	Publish struct {
		BaseURL   string        `yaml:"base"`
		APIKey    string        `yaml:"key"`
		UserAgent string        `yaml:"ua"`
		Attempts  uint          `yaml:"attempts"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"publish"`

	Diagram struct {
		BaseURL   string `yaml:"base"`
		Theme     string `yaml:"theme"`
		UserAgent string `yaml:"ua"`
	} `yaml:"diagram"`

	Check struct {
		Timeout     time.Duration `yaml:"timeout"`
		Concurrency int           `yaml:"concurrency"`
		UserAgent   string        `yaml:"ua"`
	} `yaml:"check"`

	Badge struct {
		Palette map[string]string `yaml:"palette"`
	} `yaml:"badge"`
}

// Default returns the built-in configuration.
func Default() FileConfig {
	var c FileConfig
	c.Toc.IndentChars = "-*+"
	c.Toc.IndentSpaces = 3
	c.Toc.MaxLevel = 2
	c.Publish.Attempts = 3
	c.Publish.Timeout = 30 * time.Second
	c.Publish.UserAgent = "mdpub/1.0 (+https://github.com/hyperifyio/mdpub)"
	c.Diagram.Theme = "default"
	c.Diagram.UserAgent = c.Publish.UserAgent
	c.Check.Timeout = 10 * time.Second
	c.Check.Concurrency = 4
	c.Check.UserAgent = c.Publish.UserAgent
	return c
}

// Load reads path over the defaults. A missing file with an empty path is
// not an error; an explicitly named missing file is.
func Load(path string) (FileConfig, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("config file %s not found", path)
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// TocOptions converts the toc section into generator options.
func (c FileConfig) TocOptions() toc.Options {
	opts := toc.DefaultOptions()
	if c.Toc.IndentChars != "" {
		opts.IndentChars = c.Toc.IndentChars
	}
	if c.Toc.IndentSpaces > 0 {
		opts.IndentSpaces = c.Toc.IndentSpaces
	}
	if c.Toc.MaxLevel >= 1 && c.Toc.MaxLevel <= 6 {
		opts.MaxLevel = c.Toc.MaxLevel
	}
	if c.Toc.TrimIndent != nil {
		opts.TrimIndent = *c.Toc.TrimIndent
	}
	return opts
}
