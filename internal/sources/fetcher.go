package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"roamio/gazetteer/internal/common"
	"roamio/gazetteer/internal/logging"
)

// Fetcher retrieves remote documents with a bounded timeout, a rate limit,
// and response caching. A failed fetch is always a per-source condition for
// the caller to count, never a pipeline abort.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   common.CacheInterface
	ttl     time.Duration

	// observe, when set, is called with the result of every fetch:
	// cache_hit, ok, or error
	observe func(result string)
}

// NewFetcher creates a fetcher. cache may be nil to disable caching.
func NewFetcher(timeout time.Duration, ratePerSec float64, cache common.CacheInterface, ttl time.Duration) *Fetcher {
	if ratePerSec <= 0 {
		ratePerSec = 1
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		cache:   cache,
		ttl:     ttl,
	}
}

// Observe registers a callback receiving the result class of every fetch
// (cache_hit, ok, error). Used to feed the fetch counter.
func (f *Fetcher) Observe(fn func(result string)) {
	f.observe = fn
}

func (f *Fetcher) record(result string) {
	if f.observe != nil {
		f.observe(result)
	}
}

// Fetch retrieves one remote document, preferring the cache
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if body, found := f.cache.Get(url); found {
			logging.Debug("fetch cache hit", "url", url)
			f.record("cache_hit")
			return body, nil
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		f.record("error")
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.record("error")
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.record("error")
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.record("error")
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.record("error")
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if f.cache != nil {
		f.cache.Set(url, body, f.ttl)
	}
	f.record("ok")
	return body, nil
}
