package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/layercake/pkg/cache"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/a.png", true},
		{"http://example.com/a.png", true},
		{"assets/a.png", false},
		{"/tmp/a.png", false},
		{"httpserver/a.png", false},
	}

	for _, tt := range tests {
		if got := IsRemote(tt.source); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestFetcherFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	f := NewFetcher(cache.NewMemoryCache())
	ctx := context.Background()

	data, err := f.Fetch(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("body = %q, want %q", data, "payload")
	}

	// Second fetch must come from the cache.
	if _, err := f.Fetch(ctx, srv.URL); err != nil {
		t.Fatalf("cached Fetch() error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestFetcherNotFoundNoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("404 should error")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (4xx must not retry)", got)
	}
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	data, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "recovered" {
		t.Errorf("body = %q, want %q", data, "recovered")
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestRetryAfterHeader(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"2", 2 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}

	for _, tt := range tests {
		if got := retryAfter(tt.value); got != tt.want {
			t.Errorf("retryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
