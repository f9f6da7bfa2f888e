package toc

import (
	"strings"
)

// Options controls ToC generation. The zero value is not useful; start
// from DefaultOptions and override fields as needed.
type Options struct {
	// IndentChars are the bullet characters cycled per indent depth.
	// Alternating bullets keeps renderers from collapsing sibling levels.
	IndentChars string
	// IndentSpaces is the number of spaces per indent level.
	IndentSpaces int
	// MaxLevel is the deepest heading level included (1-6).
	MaxLevel int
	// TrimIndent shifts the shallowest heading in the document to the
	// ToC's top level regardless of its absolute depth.
	TrimIndent bool
}

// DefaultOptions matches the dev.to profile.
func DefaultOptions() Options {
	return Options{
		IndentChars:  "-*+",
		IndentSpaces: 3,
		MaxLevel:     2,
		TrimIndent:   true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.IndentChars == "" {
		o.IndentChars = d.IndentChars
	}
	if o.IndentSpaces <= 0 {
		o.IndentSpaces = d.IndentSpaces
	}
	if o.MaxLevel < 1 || o.MaxLevel > 6 {
		o.MaxLevel = d.MaxLevel
	}
	return o
}

// Compose renders headings as an indented bullet list of anchor links.
// Returns the empty string when headings is empty. Lines are joined with
// "\n" and carry no trailing newline.
func Compose(headings []Heading, opts Options) string {
	if len(headings) == 0 {
		return ""
	}
	opts = opts.withDefaults()

	min := 1
	if opts.TrimIndent {
		min = headings[0].Level
		for _, h := range headings[1:] {
			if h.Level < min {
				min = h.Level
			}
		}
	}

	// Rune-indexed so a configured bullet set like "•◦" stays intact.
	bullets := []rune(opts.IndentChars)

	var b strings.Builder
	for i, h := range headings {
		depth := h.Level - min
		if depth < 0 {
			depth = 0
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(" ", depth*opts.IndentSpaces))
		b.WriteRune(bullets[depth%len(bullets)])
		b.WriteString(" [")
		b.WriteString(displayTitle(h.Title))
		b.WriteString("](#")
		b.WriteString(Slugify(h.Title))
		b.WriteString(")")
	}
	return b.String()
}

// displayTitle collapses embedded markdown links to their link text so a
// URL never shows up in the bullet label. Everything else passes through.
func displayTitle(title string) string {
	return mdLinkRe.ReplaceAllString(title, "$1")
}
