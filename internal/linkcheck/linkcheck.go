// Package linkcheck verifies that the links in a markdown document still
// resolve: remote targets answer, fragments point at real anchors, and
// relative targets exist on disk. It reports findings and never fails the
// document itself; deciding what to do with broken links is the caller's
// job.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/hyperifyio/mdpub/internal/toc"
)

// Result is the outcome for a single link.
type Result struct {
	URL    string
	OK     bool
	Status int
	Detail string
}

// Checker holds the knobs for one checking run.
type Checker struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request.
	Timeout time.Duration
	// MaxConcurrent caps in-flight requests. Zero means 4.
	MaxConcurrent int
	// BaseDir resolves relative link targets. Empty means skip them.
	BaseDir string
}

// ExtractLinks returns every link, image, and autolink destination in the
// document, in source order, duplicates included.
func ExtractLinks(source []byte) []string {
	root := goldmark.DefaultParser().Parse(gmtext.NewReader(source))
	var links []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			links = append(links, string(v.Destination))
		case *ast.Image:
			links = append(links, string(v.Destination))
		case *ast.AutoLink:
			links = append(links, string(v.URL(source)))
		}
		return ast.WalkContinue, nil
	})
	return links
}

// Check verifies every link in the document. Results come back in link
// order regardless of completion order. Remote targets are checked
// concurrently under the MaxConcurrent cap; each document is independent,
// so batch callers may in turn run documents in parallel.
func (c *Checker) Check(ctx context.Context, source []byte) []Result {
	links := ExtractLinks(source)
	results := make([]Result, len(links))

	// Anchors defined by the document itself, for #fragment-only links.
	// The anchors use the same slug rules the ToC generator publishes
	// with, so a link that checks out here resolves after publishing.
	own := make(map[string]bool)
	for _, h := range toc.ScanHeadings(string(source), 6) {
		own[toc.Slugify(h.Title)] = true
	}

	limit := c.MaxConcurrent
	if limit <= 0 {
		limit = 4
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, link := range links {
		switch {
		case link == "":
			results[i] = Result{URL: link, OK: false, Detail: "empty link target"}
		case strings.HasPrefix(link, "#"):
			frag := strings.TrimPrefix(link, "#")
			if own[frag] {
				results[i] = Result{URL: link, OK: true}
			} else {
				results[i] = Result{URL: link, OK: false, Detail: "no heading generates this anchor"}
			}
		case strings.HasPrefix(link, "mailto:") || strings.HasPrefix(link, "data:"):
			results[i] = Result{URL: link, OK: true, Detail: "skipped"}
		case strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://"):
			wg.Add(1)
			go func(i int, link string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[i] = c.checkRemote(ctx, link)
			}(i, link)
		default:
			results[i] = c.checkRelative(link)
		}
	}
	wg.Wait()
	return results
}

func (c *Checker) checkRemote(ctx context.Context, link string) Result {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return Result{URL: link, OK: false, Detail: err.Error()}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{URL: link, OK: false, Detail: err.Error()}
	}
	defer resp.Body.Close()

	res := Result{URL: link, Status: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		res.Detail = fmt.Sprintf("status %d", resp.StatusCode)
		return res
	}

	frag := fragmentOf(link)
	if frag == "" || !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		res.OK = true
		return res
	}
	anchors, err := collectAnchors(resp)
	if err != nil {
		res.Detail = fmt.Sprintf("parse html: %v", err)
		return res
	}
	if !anchors[frag] {
		res.Detail = fmt.Sprintf("anchor #%s not found", frag)
		return res
	}
	res.OK = true
	return res
}

func (c *Checker) checkRelative(link string) Result {
	if c.BaseDir == "" {
		return Result{URL: link, OK: true, Detail: "skipped"}
	}
	target := link
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return Result{URL: link, OK: true}
	}
	if _, err := os.Stat(filepath.Join(c.BaseDir, filepath.FromSlash(target))); err != nil {
		return Result{URL: link, OK: false, Detail: "file not found"}
	}
	return Result{URL: link, OK: true}
}

func fragmentOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Fragment
}

// collectAnchors gathers the id attributes and legacy <a name=...> values
// a fragment can point at.
func collectAnchors(resp *http.Response) (map[string]bool, error) {
	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	anchors := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "id" || (attr.Key == "name" && n.Data == "a") {
					anchors[attr.Val] = true
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return anchors, nil
}
