package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	opts := c.TocOptions()
	if opts.IndentChars != "-*+" || opts.IndentSpaces != 3 || opts.MaxLevel != 2 || !opts.TrimIndent {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if c.Publish.Attempts != 3 {
		t.Fatalf("publish attempts = %d", c.Publish.Attempts)
	}
	if c.Diagram.UserAgent == "" || c.Diagram.UserAgent != c.Publish.UserAgent {
		t.Fatalf("diagram ua not defaulted from shared ua: %q", c.Diagram.UserAgent)
	}
}

func TestDiagramUserAgentOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdpub.yaml")
	content := "diagram:\n  ua: diagram-bot/1.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Diagram.UserAgent != "diagram-bot/1.0" {
		t.Fatalf("diagram ua = %q", c.Diagram.UserAgent)
	}
	if c.Publish.UserAgent == "diagram-bot/1.0" {
		t.Fatalf("publish ua overwritten: %q", c.Publish.UserAgent)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdpub.yaml")
	content := `
toc:
  maxLevel: 4
  trimIndent: false
publish:
  base: https://dev.example/api
  key: secret
check:
  concurrency: 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts := c.TocOptions()
	if opts.MaxLevel != 4 || opts.TrimIndent {
		t.Fatalf("toc overrides lost: %+v", opts)
	}
	// Untouched sections keep their defaults.
	if opts.IndentSpaces != 3 {
		t.Fatalf("indentSpaces = %d", opts.IndentSpaces)
	}
	if c.Publish.BaseURL != "https://dev.example/api" || c.Publish.APIKey != "secret" {
		t.Fatalf("publish overrides lost: %+v", c.Publish)
	}
	if c.Check.Concurrency != 8 {
		t.Fatalf("check concurrency = %d", c.Check.Concurrency)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for explicitly named missing file")
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Toc.MaxLevel != 2 {
		t.Fatalf("defaults not applied: %+v", c.Toc)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("toc: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
