// Package article models a markdown article file with dev.to style YAML
// front matter. Parsing is lenient: a file without front matter is a valid
// article with empty metadata.
package article

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/mdpub/internal/toc"
)

// Meta is the front matter block. Custom keeps unknown keys so a round
// trip through Parse and Render does not drop anything an author added.
type Meta struct {
	Title        string         `yaml:"title,omitempty"`
	Published    bool           `yaml:"published"`
	Description  string         `yaml:"description,omitempty"`
	Tags         []string       `yaml:"tags,omitempty"`
	Series       string         `yaml:"series,omitempty"`
	CanonicalURL string         `yaml:"canonical_url,omitempty"`
	CoverImage   string         `yaml:"cover_image,omitempty"`
	// ID is the platform-assigned article id, written back after the
	// first successful publish so later pushes become updates.
	ID     int            `yaml:"id,omitempty"`
	Custom map[string]any `yaml:",inline"`
}

// Article is one markdown file: metadata plus body. Body excludes the
// front matter delimiters.
type Article struct {
	Path string
	Meta Meta
	Body string
}

// Parse reads an article from raw file content.
func Parse(source []byte) (Article, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Article{}, fmt.Errorf("parse front matter: %w", err)
	}
	return Article{Meta: meta, Body: string(body)}, nil
}

// Load reads and parses the article at path.
func Load(path string) (Article, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Article{}, fmt.Errorf("read article: %w", err)
	}
	a, err := Parse(b)
	if err != nil {
		return Article{}, fmt.Errorf("%s: %w", path, err)
	}
	a.Path = path
	return a, nil
}

// Render serializes the article back to file form. Articles that carry no
// metadata at all render as a bare body, matching how they were read.
func (a Article) Render() ([]byte, error) {
	if a.Meta.isZero() {
		return []byte(a.Body), nil
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(a.Meta); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimLeft(a.Body, "\n"))
	return buf.Bytes(), nil
}

// Save writes the article back to its path.
func (a Article) Save() error {
	if a.Path == "" {
		return fmt.Errorf("article has no path")
	}
	b, err := a.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.Path, b, 0o644); err != nil {
		return fmt.Errorf("write article: %w", err)
	}
	return nil
}

// Title returns the front matter title, falling back to the first heading
// in the body.
func (a Article) Title() string {
	if a.Meta.Title != "" {
		return a.Meta.Title
	}
	if hs := toc.ScanHeadings(a.Body, 6); len(hs) > 0 {
		return hs[0].Title
	}
	return ""
}

func (m Meta) isZero() bool {
	return m.Title == "" && !m.Published && m.Description == "" &&
		len(m.Tags) == 0 && m.Series == "" && m.CanonicalURL == "" &&
		m.CoverImage == "" && m.ID == 0 && len(m.Custom) == 0
}
