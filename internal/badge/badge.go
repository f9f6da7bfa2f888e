// Package badge renders flat SVG badges (label/value pills) for article
// headers and READMEs. Colors come from an explicit palette value so
// nothing here reads the process environment.
package badge

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Palette maps color names to hex values. Values may also be given as
// hex directly; Resolve falls through for unknown names.
type Palette map[string]string

// DefaultPalette mirrors the usual badge service colors.
func DefaultPalette() Palette {
	return Palette{
		"brightgreen": "#4c1",
		"green":       "#97ca00",
		"yellow":      "#dfb317",
		"orange":      "#fe7d37",
		"red":         "#e05d44",
		"blue":        "#007ec6",
		"lightgrey":   "#9f9f9f",
		"grey":        "#555",
	}
}

// Resolve maps a color name through the palette, passing hex values and
// unknown names through unchanged, and falling back to blue for empty.
func (p Palette) Resolve(name string) string {
	if name == "" {
		return p.resolveOr("blue", "#007ec6")
	}
	if strings.HasPrefix(name, "#") {
		return name
	}
	if hex, ok := p[name]; ok {
		return hex
	}
	return name
}

func (p Palette) resolveOr(name, fallback string) string {
	if hex, ok := p[name]; ok {
		return hex
	}
	return fallback
}

// Badge describes one badge.
type Badge struct {
	Label string
	Value string
	// Color names the value side's color; the label side is always grey.
	Color string
}

const (
	padding    = 6
	height     = 20
	textY      = 14
	labelColor = "#555"
)

// Render produces the SVG document for the badge.
func Render(b Badge, p Palette) string {
	if p == nil {
		p = DefaultPalette()
	}
	labelW := textWidth(b.Label) + 2*padding
	valueW := textWidth(b.Value) + 2*padding
	total := labelW + valueW

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" role="img" aria-label="%s: %s">`,
		total, height, escape(b.Label), escape(b.Value))
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="%s"/>`, labelW, height, labelColor)
	fmt.Fprintf(&sb, `<rect x="%d" width="%d" height="%d" fill="%s"/>`, labelW, valueW, height, p.Resolve(b.Color))
	fmt.Fprintf(&sb, `<g fill="#fff" font-family="Verdana,Geneva,sans-serif" font-size="11">`)
	fmt.Fprintf(&sb, `<text x="%d" y="%d">%s</text>`, padding, textY, escape(b.Label))
	fmt.Fprintf(&sb, `<text x="%d" y="%d">%s</text>`, labelW+padding, textY, escape(b.Value))
	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// textWidth measures rendered text width in pixels. The fixed 7x13 face
// tracks the 11px sans-serif the SVG asks for closely enough for badge
// sizing.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return svgEscaper.Replace(s)
}
