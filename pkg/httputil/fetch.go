package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/layercake/pkg/cache"
)

// FetchTTL is how long fetched remote resources stay cached.
const FetchTTL = 24 * time.Hour

// maxFetchSize bounds a single remote resource (32 MiB).
const maxFetchSize = 32 << 20

// IsRemote reports whether a source names an http(s) URL rather than a
// local file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetcher downloads remote resources with retry and byte caching.
type Fetcher struct {
	client *http.Client
	cache  cache.Cache
}

// NewFetcher creates a fetcher backed by the given cache. A nil cache
// disables caching.
func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  c,
	}
}

// Fetch downloads url and returns the response body. Transient failures
// (network errors, 5xx, 429) are retried with backoff; successful bodies
// are cached for [FetchTTL].
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := "fetch:" + cache.Hash([]byte(url))
	if data, ok, err := f.cache.Get(ctx, key); err == nil && ok {
		return data, nil
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return &RetryableError{
				Err:   fmt.Errorf("GET %s: %s", url, resp.Status),
				After: retryAfter(resp.Header.Get("Retry-After")),
			}
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("GET %s: %s", url, resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
		if err != nil {
			return &RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = f.cache.Set(ctx, key, body, FetchTTL)
	return body, nil
}

// retryAfter parses a Retry-After header value in seconds. Zero when the
// header is absent or not a plain number (HTTP-date forms are ignored).
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
