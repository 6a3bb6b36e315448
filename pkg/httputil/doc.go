// Package httputil fetches remote resources for scene documents.
//
// # Overview
//
// Image layers may name an http(s) URL as their source. This package
// provides the download path for those sources:
//
//   - [Fetcher]: cached, retrying GET of a remote resource
//   - [Retry]: automatic retry with exponential backoff
//
// # Fetching
//
// [Fetcher] wraps an HTTP client with a byte cache, so a scene that is
// rendered repeatedly downloads each remote image once:
//
//	f := httputil.NewFetcher(fileCache)
//	data, err := f.Fetch(ctx, "https://example.com/logo.png")
//
// # Retry
//
// [Retry] re-attempts transient failures only: network errors, 5xx
// server errors, and 429 rate limit responses. Other failures return
// immediately. Backoff doubles after each failed attempt; a numeric
// Retry-After header from the server overrides the next delay. Both
// are capped so a throttling server cannot stall a render.
package httputil
