package toc

import (
	"bufio"
	"regexp"
	"strings"
)

// Heading is a single heading found during a scan.
type Heading struct {
	Level int
	// Title is the literal heading text, trimmed. It may still contain
	// inline markdown (links, code spans, emphasis).
	Title string
}

type scanState int

const (
	stateNormal scanState = iota
	stateCodeBlock
	stateHTMLComment
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6}) +(.+)$`)
	// Fences may open inside a list item, e.g. "- ```go".
	listPrefixRe = regexp.MustCompile(`^(?:[-*+]|\d+[.)])\s+`)
	fenceRe      = regexp.MustCompile("^(?:`{3,}|~{3,})")
)

// ScanHeadings walks content line by line and returns every heading at or
// below maxLevel that sits outside fenced code blocks and HTML comments.
// Each call scans from scratch; no cursor state survives between calls.
//
// An unterminated fence swallows the rest of the document: trailing
// headings after it are excluded rather than guessed at.
func ScanHeadings(content string, maxLevel int) []Heading {
	if maxLevel < 1 {
		maxLevel = 1
	}
	if maxLevel > 6 {
		maxLevel = 6
	}

	var out []Heading
	state := stateNormal
	var fence string

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		switch state {
		case stateCodeBlock:
			if strings.HasPrefix(trimmed, fence) {
				state = stateNormal
			}
		case stateHTMLComment:
			if strings.Contains(line, "-->") {
				state = stateNormal
			}
		default:
			// Fence detection runs before comment detection so a "#"
			// inside a fenced block is never misread as a heading.
			stripped := listPrefixRe.ReplaceAllString(trimmed, "")
			if m := fenceRe.FindString(stripped); m != "" {
				fence = m
				state = stateCodeBlock
				continue
			}
			if strings.Contains(line, "<!--") && !strings.Contains(line, "-->") {
				state = stateHTMLComment
				continue
			}
			if m := headingRe.FindStringSubmatch(line); m != nil {
				level := len(m[1])
				if level <= maxLevel {
					out = append(out, Heading{Level: level, Title: strings.TrimSpace(m[2])})
				}
			}
		}
	}
	return out
}
