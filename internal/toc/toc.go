// Package toc generates and maintains a table of contents block inside
// markdown documents, with anchors matching the ones dev.to generates, so
// the links resolve after publishing.
//
// Every entry point is a total function over document text: no errors, no
// I/O, no shared state. Callers hand in the full document and get the full
// document back.
package toc

import (
	"strings"
)

// Emitted marker lines. Detection below is broader than what we emit so
// blocks written by other generators (liquid comments included) are
// recognized and replaced rather than duplicated.
const (
	StartMarker = "<!-- TOC start -->"
	EndMarker   = "<!-- TOC end -->"
	Placeholder = "[TOC]"
)

// NeedsUpdate reports whether content carries a recognizable ToC block or
// placeholder. It does not check whether the block is stale.
func NeedsUpdate(content string) bool {
	_, _, ok := findBlock(strings.Split(content, "\n"))
	return ok
}

// Update strips any existing ToC block, regenerates the ToC from the
// remaining content, and reinserts it: at the old block's position when
// one existed, otherwise after a leading front matter block, otherwise at
// the top of the document.
//
// When no headings survive the level cutoff the original content is
// returned untouched, existing block included; an empty ToC is never
// inserted and never destroys a previous one.
func Update(content string, opts Options) string {
	opts = opts.withDefaults()
	lines := strings.Split(content, "\n")

	insertAt := -1
	if s, e, ok := findBlock(lines); ok {
		insertAt = s
		lines = append(lines[:s:s], lines[e+1:]...)
	}

	headings := ScanHeadings(strings.Join(lines, "\n"), opts.MaxLevel)
	if len(headings) == 0 {
		return content
	}

	block := make([]string, 0, len(headings)+4)
	block = append(block, StartMarker, "")
	block = append(block, strings.Split(Compose(headings, opts), "\n")...)
	block = append(block, "", EndMarker)

	var out []string
	if insertAt >= 0 {
		if insertAt > len(lines) {
			insertAt = len(lines)
		}
		out = append(out, lines[:insertAt]...)
		out = append(out, block...)
		out = append(out, lines[insertAt:]...)
	} else {
		fmEnd := frontMatterEnd(lines)
		rest := fmEnd
		for rest < len(lines) && strings.TrimSpace(lines[rest]) == "" {
			rest++
		}
		out = append(out, lines[:fmEnd]...)
		if fmEnd > 0 {
			out = append(out, "")
		}
		out = append(out, block...)
		out = append(out, "")
		out = append(out, lines[rest:]...)
	}
	return strings.Join(out, "\n")
}

// Generate returns the ToC markup alone, without markers or insertion.
// Used for previews and by callers that place the block themselves.
func Generate(content string, opts Options) string {
	opts = opts.withDefaults()
	lines := strings.Split(content, "\n")
	if s, e, ok := findBlock(lines); ok {
		lines = append(lines[:s:s], lines[e+1:]...)
	}
	return Compose(ScanHeadings(strings.Join(lines, "\n"), opts.MaxLevel), opts)
}

// findBlock locates the authoritative ToC span: a start/end marker pair,
// or failing that a single placeholder line, which acts as both ends of a
// zero-height span. A start marker with no end line falls through to the
// placeholder search so a damaged block is treated as absent rather than
// eating the rest of the document.
func findBlock(lines []string) (start, end int, ok bool) {
	for i, line := range lines {
		if !isStartMarker(line) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if isEndMarker(lines[j]) {
				return i, j, true
			}
		}
		break
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == Placeholder {
			return i, i, true
		}
	}
	return 0, 0, false
}

func isStartMarker(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "{%-") &&
		!strings.HasPrefix(t, "{% comment %}") &&
		!strings.HasPrefix(t, "<!--") {
		return false
	}
	return strings.Contains(t, "TOC start")
}

func isEndMarker(line string) bool {
	return strings.Contains(line, "TOC end")
}

// frontMatterEnd returns the index just past a leading "---" delimited
// front matter block, or 0 when the document has none.
func frontMatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i + 1
		}
	}
	return 0
}
