package devto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/mdpub/internal/article"
)

func testArticle() article.Article {
	return article.Article{
		Meta: article.Meta{Title: "Hello", Published: true, Tags: []string{"go"}},
		Body: "# Hello\n\nbody",
	}
}

func TestPushCreatesAndWritesBackID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/articles" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("api-key") != "k" {
			t.Errorf("missing api key header")
		}
		var p payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode: %v", err)
		}
		if p.Article.Title != "Hello" || !p.Article.Published {
			t.Errorf("unexpected payload: %+v", p.Article)
		}
		if !strings.Contains(p.Article.BodyMarkdown, "# Hello") {
			t.Errorf("body markdown lost: %q", p.Article.BodyMarkdown)
		}
		_ = json.NewEncoder(w).Encode(Published{ID: 77, URL: "https://dev.to/u/hello"})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", MaxAttempts: 1}
	a := testArticle()
	pub, err := c.Push(context.Background(), &a)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if pub.ID != 77 || a.Meta.ID != 77 {
		t.Fatalf("id not written back: pub=%d meta=%d", pub.ID, a.Meta.ID)
	}
}

func TestPushUpdatesWhenIDPresent(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_ = json.NewEncoder(w).Encode(Published{ID: 42})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", MaxAttempts: 1}
	a := testArticle()
	a.Meta.ID = 42
	if _, err := c.Push(context.Background(), &a); err != nil {
		t.Fatalf("push: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/articles/42" {
		t.Fatalf("expected PUT /articles/42, got %s %s", gotMethod, gotPath)
	}
}

func TestRetryOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(Published{ID: 1})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", MaxAttempts: 3, PerRequestTimeout: 2 * time.Second}
	a := testArticle()
	if _, err := c.Push(context.Background(), &a); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestNoRetryOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("tag not allowed\n"))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", MaxAttempts: 3}
	a := testArticle()
	if _, err := c.Push(context.Background(), &a); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("client error retried: %d calls", calls)
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := &Client{MaxAttempts: 1}
	a := testArticle()
	if _, err := c.Push(context.Background(), &a); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
