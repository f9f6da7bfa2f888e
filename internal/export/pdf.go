// Package export writes a print-friendly PDF rendition of an article.
// Layout is intentionally simple: headings, paragraphs, monospaced code
// blocks, clickable links. Full markdown layout is out of scope.
package export

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/mdpub/internal/article"
)

var linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// PDF renders the article to outPath. The front matter never appears in
// the output; the title comes from metadata or the first heading.
func PDF(a article.Article, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(a.Title(), true)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	inCode := false
	fence := ""

	sc := bufio.NewScanner(strings.NewReader(a.Body))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		s := strings.TrimSpace(line)

		if inCode {
			if strings.HasPrefix(s, fence) {
				inCode = false
				pdf.SetFont("Helvetica", "", 11)
				pdf.Ln(3)
				continue
			}
			pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
			continue
		}
		if strings.HasPrefix(s, "```") || strings.HasPrefix(s, "~~~") {
			fence = s[:3]
			inCode = true
			pdf.SetFont("Courier", "", 9)
			pdf.Ln(2)
			continue
		}
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if strings.HasPrefix(s, "#") {
			level := 0
			for level < len(s) && s[level] == '#' {
				level++
			}
			text := strings.TrimSpace(s[level:])
			if text == "" {
				continue
			}
			size := 16.0 - 2.0*float64(level)
			if size < 11 {
				size = 11
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		writeLine(pdf, s)
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// writeLine emits one paragraph line, turning markdown links into
// clickable PDF links. Intra-document anchors render as plain text since
// the PDF carries no matching targets.
func writeLine(pdf *gofpdf.Fpdf, s string) {
	matches := linkRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		pdf.MultiCell(0, 5, s, "", "L", false)
		return
	}
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			pdf.Write(5, s[pos:m[0]])
		}
		text := s[m[2]:m[3]]
		url := s[m[4]:m[5]]
		if strings.HasPrefix(url, "#") {
			pdf.Write(5, text)
		} else {
			pdf.WriteLinkString(5, text, url)
		}
		pos = m[1]
	}
	if pos < len(s) {
		pdf.Write(5, s[pos:])
	}
}
