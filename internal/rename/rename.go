// Package rename derives filesystem names for article files from their
// titles. Unlike the anchor slugifier, which must match dev.to byte for
// byte, filenames fold accents and keep hyphens, so the two algorithms
// stay separate on purpose.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)
	nonWordRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug converts a title into a filename stem: accents folded to ASCII,
// lowercased, runs of anything else collapsed to single hyphens.
func Slug(title string) string {
	folded, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), title)
	if err != nil {
		folded = title
	}
	s := strings.ToLower(folded)
	s = nonWordRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Propose returns the path the file should have for the given title. An
// existing YYYY-MM-DD- prefix on the current name is kept. An empty title
// or an empty slug proposes no change.
func Propose(path, title string) string {
	slug := Slug(title)
	if slug == "" {
		return path
	}
	base := filepath.Base(path)
	if prefix := datePrefixRe.FindString(base); prefix != "" {
		slug = prefix + slug
	}
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".md"
	}
	return filepath.Join(filepath.Dir(path), slug+ext)
}

// Apply renames path to the proposal for title. It refuses to clobber an
// existing file and reports the resulting path, unchanged when the name
// already matches.
func Apply(path, title string) (string, error) {
	target := Propose(path, title)
	if target == path {
		return path, nil
	}
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("rename %s: %s already exists", path, target)
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}
	return target, nil
}
