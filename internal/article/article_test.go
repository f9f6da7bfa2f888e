package article

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `---
title: Testing in Go
published: false
tags:
  - go
  - testing
custom_key: kept
---

# Testing in Go

Body text.
`

func TestParse(t *testing.T) {
	a, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Meta.Title != "Testing in Go" {
		t.Fatalf("title = %q", a.Meta.Title)
	}
	if a.Meta.Published {
		t.Fatalf("expected published=false")
	}
	if len(a.Meta.Tags) != 2 || a.Meta.Tags[0] != "go" {
		t.Fatalf("tags = %v", a.Meta.Tags)
	}
	if a.Meta.Custom["custom_key"] != "kept" {
		t.Fatalf("custom keys dropped: %v", a.Meta.Custom)
	}
	if strings.Contains(a.Body, "---") {
		t.Fatalf("delimiters leaked into body: %q", a.Body)
	}
	if !strings.Contains(a.Body, "# Testing in Go") {
		t.Fatalf("body lost: %q", a.Body)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	a, err := Parse([]byte("# Just markdown\n\ntext"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Meta.Title != "" {
		t.Fatalf("unexpected title %q", a.Meta.Title)
	}
	if a.Body != "# Just markdown\n\ntext" {
		t.Fatalf("body = %q", a.Body)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	a, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := a.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if b.Meta.Title != a.Meta.Title || b.Meta.Published != a.Meta.Published {
		t.Fatalf("metadata changed: %#v vs %#v", b.Meta, a.Meta)
	}
	if b.Meta.Custom["custom_key"] != "kept" {
		t.Fatalf("custom keys dropped on round trip: %v", b.Meta.Custom)
	}
	if strings.TrimSpace(b.Body) != strings.TrimSpace(a.Body) {
		t.Fatalf("body changed: %q vs %q", b.Body, a.Body)
	}
}

func TestRenderBareBody(t *testing.T) {
	a := Article{Body: "# No metadata\n"}
	out, err := a.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "# No metadata\n" {
		t.Fatalf("bare article grew front matter: %q", out)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a.Meta.ID = 4242
	if err := a.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b.Meta.ID != 4242 {
		t.Fatalf("id not persisted: %d", b.Meta.ID)
	}
}

func TestTitleFallsBackToHeading(t *testing.T) {
	a := Article{Body: "intro\n\n# From Heading\n"}
	if got := a.Title(); got != "From Heading" {
		t.Fatalf("title = %q", got)
	}
}
