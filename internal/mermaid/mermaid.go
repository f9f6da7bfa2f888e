// Package mermaid turns ```mermaid fences into image links served by a
// mermaid-ink style renderer. The diagram source travels inside the URL:
// JSON-wrapped, deflate-compressed, URL-safe base64, prefixed "pako:".
// The document contract is text in, text out; no file handles held.
package mermaid

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://mermaid.ink"

// Renderer builds image URLs for diagram sources and can fetch the
// rendered bytes to verify the service accepts a diagram.
type Renderer struct {
	BaseURL    string
	Theme      string
	UserAgent  string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// EncodePako compresses a diagram source into the pako token the
// rendering service expects.
func EncodePako(source, theme string) (string, error) {
	if theme == "" {
		theme = "default"
	}
	wrapped, err := json.Marshal(map[string]any{
		"code":    source,
		"mermaid": map[string]string{"theme": theme},
	})
	if err != nil {
		return "", fmt.Errorf("encode diagram: %w", err)
	}
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(wrapped); err != nil {
		return "", fmt.Errorf("compress diagram: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress diagram: %w", err)
	}
	return "pako:" + base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// ImageURL returns the SVG endpoint URL embedding the diagram source.
func (r *Renderer) ImageURL(source string) (string, error) {
	token, err := EncodePako(source, r.Theme)
	if err != nil {
		return "", err
	}
	base := r.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/svg/" + token, nil
}

// Fetch renders one diagram through the service and returns the image
// bytes. Used by callers that want to fail fast on invalid diagrams
// instead of publishing a broken image link.
func (r *Renderer) Fetch(ctx context.Context, source string) ([]byte, error) {
	url, err := r.ImageURL(source)
	if err != nil {
		return nil, err
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render diagram: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render diagram: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read rendered diagram: %w", err)
	}
	return b, nil
}

// ReplaceFences swaps every top-level ```mermaid fence in content for an
// image link produced by the renderer. Fences inside other fenced blocks
// are left alone. The alt text counts diagrams in document order.
func (r *Renderer) ReplaceFences(content string) (string, error) {
	lines := strings.Split(content, "\n")
	var out []string
	var diagram []string
	openLine := ""
	inMermaid := false
	inOther := false
	otherFence := ""
	count := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case inMermaid:
			if strings.HasPrefix(trimmed, "```") {
				count++
				url, err := r.ImageURL(strings.Join(diagram, "\n"))
				if err != nil {
					return "", err
				}
				out = append(out, fmt.Sprintf("![diagram %d](%s)", count, url))
				diagram = diagram[:0]
				inMermaid = false
				continue
			}
			diagram = append(diagram, line)
		case inOther:
			out = append(out, line)
			if strings.HasPrefix(trimmed, otherFence) {
				inOther = false
			}
		default:
			if strings.HasPrefix(trimmed, "```") && strings.TrimSpace(strings.TrimPrefix(trimmed, "```")) == "mermaid" {
				inMermaid = true
				openLine = line
				continue
			}
			if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
				inOther = true
				otherFence = trimmed[:3]
			}
			out = append(out, line)
		}
	}
	// An unterminated mermaid fence is passed through untouched.
	if inMermaid {
		out = append(out, openLine)
		out = append(out, diagram...)
	}
	return strings.Join(out, "\n"), nil
}
