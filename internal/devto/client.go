// Package devto pushes articles to a dev.to compatible articles API. It is
// a thin orchestration layer: serialize, POST or PUT, write the assigned
// id back. All policy beyond retry-with-backoff lives with the caller.
package devto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/mdpub/internal/article"
)

// ErrMissingAPIKey is returned before any request is attempted.
var ErrMissingAPIKey = errors.New("devto: api key is not configured")

const defaultBaseURL = "https://dev.to/api"

// Client talks to the articles endpoint. The zero value is not usable;
// set at least APIKey.
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts uint
	// PerRequestTimeout bounds each attempt.
	PerRequestTimeout time.Duration
}

// Published is the subset of the API response the tool cares about.
type Published struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

type payload struct {
	Article wireArticle `json:"article"`
}

type wireArticle struct {
	Title        string   `json:"title"`
	BodyMarkdown string   `json:"body_markdown"`
	Published    bool     `json:"published"`
	Series       string   `json:"series,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CanonicalURL string   `json:"canonical_url,omitempty"`
}

// Push creates the article when it has no platform id yet, otherwise
// updates the existing one. On create the assigned id is written back
// into the article's metadata so the caller can persist it.
func (c *Client) Push(ctx context.Context, a *article.Article) (Published, error) {
	if a.Meta.ID != 0 {
		return c.Update(ctx, a.Meta.ID, *a)
	}
	pub, err := c.Create(ctx, *a)
	if err != nil {
		return Published{}, err
	}
	a.Meta.ID = pub.ID
	return pub, nil
}

// Create submits a new article.
func (c *Client) Create(ctx context.Context, a article.Article) (Published, error) {
	return c.send(ctx, http.MethodPost, c.baseURL()+"/articles", a)
}

// Update replaces an existing article.
func (c *Client) Update(ctx context.Context, id int, a article.Article) (Published, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("%s/articles/%d", c.baseURL(), id), a)
}

func (c *Client) send(ctx context.Context, method, url string, a article.Article) (Published, error) {
	if c.APIKey == "" {
		return Published{}, ErrMissingAPIKey
	}
	rendered, err := a.Render()
	if err != nil {
		return Published{}, err
	}
	body, err := json.Marshal(payload{Article: wireArticle{
		Title:        a.Title(),
		BodyMarkdown: string(rendered),
		Published:    a.Meta.Published,
		Series:       a.Meta.Series,
		Tags:         a.Meta.Tags,
		CanonicalURL: a.Meta.CanonicalURL,
	}})
	if err != nil {
		return Published{}, fmt.Errorf("encode article: %w", err)
	}

	attempts := c.MaxAttempts
	if attempts == 0 {
		attempts = 3
	}
	var pub Published
	err = retry.Do(
		func() error {
			pub, err = c.tryOnce(ctx, method, url, body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Str("url", url).Msg("publish retry")
		}),
	)
	if err != nil {
		return Published{}, err
	}
	return pub, nil
}

func (c *Client) tryOnce(ctx context.Context, method, url string, body []byte) (Published, error) {
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return Published{}, retry.Unrecoverable(fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.APIKey)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Published{}, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Published{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return Published{}, fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Client errors will not improve on retry.
		return Published{}, retry.Unrecoverable(fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, firstLine(data)))
	}
	var pub Published
	if err := json.Unmarshal(data, &pub); err != nil {
		return Published{}, retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
	}
	return pub, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}
