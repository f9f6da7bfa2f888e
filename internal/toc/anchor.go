package toc

import (
	"regexp"
	"strings"
)

// Slugify converts a heading title into the URL anchor fragment dev.to
// generates for it, so that composed ToC links resolve on the published
// article. The transform order is load-bearing: code-span escaping must
// run before tag stripping, link collapsing before punctuation removal,
// and the backtick markers before whitespace hyphenation. Reordering any
// of these changes anchors for titles mixing code spans and punctuation.
//
// Identical titles produce identical anchors. dev.to does not deduplicate
// anchors, so neither do we.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = codeSpanRe.ReplaceAllStringFunc(s, htmlWordEscaper.Replace)
	s = htmlTagRe.ReplaceAllString(s, "")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = htmlWordEscaper.Replace(s)
	s = stripEmoji(s)
	s = strings.TrimSpace(s)
	s = markCodeSpans(s)
	s = strings.Map(dropPunct, s)
	s = spaceRunRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var (
	codeSpanRe  = regexp.MustCompile("`[^`]*`")
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	mdLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
	hyphenRunRe = regexp.MustCompile(`-{2,}`)

	// dev.to substitutes bare words, not HTML entities.
	htmlWordEscaper = strings.NewReplacer("&", "amp", "<", "lt", ">", "gt")
)

// markCodeSpans rewrites backticks as the literal " raw " / " endraw "
// markers dev.to leaves behind for inline code. The replacement depends on
// how many backticks precede this one in the whole string, so it needs a
// running counter rather than a regex substitution.
func markCodeSpans(s string) string {
	if !strings.ContainsRune(s, '`') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	n := 0
	for _, r := range s {
		if r != '`' {
			b.WriteRune(r)
			continue
		}
		if n%2 == 0 {
			b.WriteString(" raw ")
		} else {
			b.WriteString(" endraw ")
		}
		n++
	}
	return b.String()
}

const asciiPunct = "!\"#$%&'()*+,./:;<=>?@[\\]^_`{|}~-"

// Curly quote and prime look-alikes that dev.to strips alongside ASCII
// punctuation.
const quoteLookalikes = "‘’‚‛“”„‟′″"

func dropPunct(r rune) rune {
	if r < 0x80 {
		if strings.ContainsRune(asciiPunct, r) {
			return -1
		}
		return r
	}
	if strings.ContainsRune(quoteLookalikes, r) {
		return -1
	}
	return r
}

// emojiRanges is a deliberate subset of the pictograph blocks dev.to
// removes. It is known to be incomplete; do not extend it, anchors of
// already published articles depend on the current behavior.
var emojiRanges = [...][2]rune{
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // symbols extended-A
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0xFE00, 0xFE0F},   // variation selectors
	{0x200D, 0x200D},   // zero-width joiner
}

func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		for _, rr := range emojiRanges {
			if r >= rr[0] && r <= rr[1] {
				return -1
			}
		}
		return r
	}, s)
}
