package requester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/fereidani/httpdecompressor"
	"github.com/moviestream/tamilblasters-indexer/cache"
	"github.com/moviestream/tamilblasters-indexer/logging"
	"github.com/moviestream/tamilblasters-indexer/monitoring"
	"github.com/moviestream/tamilblasters-indexer/utils"
)

const (
	cacheKey      = "shortLivedCache"
	cacheHitLabel = "document_body"
)

var challengeRegex = regexp.MustCompile(`(?i)(just a moment|cf-chl-bypass|under attack)`)

// Requester fetches catalog documents. It spoofs a browser, keeps a
// short-lived cache of bodies in Redis, and falls back to FlareSolverr
// when the site answers with an anti-bot challenge.
type Requester struct {
	fs                        *FlareSolverr
	c                         *cache.Redis
	metrics                   *monitoring.Metrics
	httpClient                *http.Client
	shortLivedCacheExpiration time.Duration
}

// NewRequester builds a Requester. fs may be nil, in which case
// challenged responses are returned as errors instead of being solved.
func NewRequester(fs *FlareSolverr, c *cache.Redis, timeout time.Duration, metrics *monitoring.Metrics) *Requester {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DisableCompression:  false,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}

	return &Requester{fs: fs, httpClient: httpClient, c: c, metrics: metrics, shortLivedCacheExpiration: 30 * time.Minute}
}

func (i *Requester) SetShortLivedCacheExpiration(expiration time.Duration) {
	i.shortLivedCacheExpiration = expiration
}

// GetDocument returns the body of the page at url.
func (i *Requester) GetDocument(ctx context.Context, url string) (io.ReadCloser, error) {
	// try request from short-lived cache
	key := fmt.Sprintf("%s:%s", cacheKey, url)
	bodyByte, err := i.c.Get(ctx, key)
	if err == nil {
		i.metrics.CacheHits.WithLabelValues(cacheHitLabel).Inc()
		logging.Debug().Str("url", url).Msg("Returning from short-lived cache")
		return io.NopCloser(bytes.NewReader(bodyByte)), nil
	}
	defer i.metrics.CacheMisses.WithLabelValues(cacheHitLabel).Inc()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}

	spoofBrowserHeaders(req, "")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for url %s", resp.StatusCode, url)
	}

	body, err := httpdecompressor.Reader(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress response: %w", err)
	}
	defer body.Close()

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	} else {
		buf.Grow(32 * 1024)
	}
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	bodyByte = buf.Bytes()

	if hasChallenge(bodyByte) {
		if i.fs == nil {
			return nil, fmt.Errorf("response is a challenge for url %s", url)
		}
		solved, err := i.fs.Get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to solve challenge for url %s: %w", url, err)
		}
		bodyByte, err = io.ReadAll(solved)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		logging.Debug().Str("url", url).Msg("Request served from flaresolverr")
	} else {
		logging.Debug().Str("url", url).Msg("Request served from plain client")
	}

	// only cache real documents, never challenges or error bodies
	if len(bodyByte) > 0 && utils.IsValidHTML(string(bodyByte)) {
		if err := i.c.SetWithExpiration(ctx, key, bodyByte, i.shortLivedCacheExpiration); err != nil {
			logging.Debug().Err(err).Str("url", url).Msg("Failed to save response to cache")
		}
	}

	return io.NopCloser(bytes.NewReader(bodyByte)), nil
}

// ExpireDocument drops a cached body so the next fetch goes to the site.
func (i *Requester) ExpireDocument(ctx context.Context, url string) error {
	key := fmt.Sprintf("%s:%s", cacheKey, url)
	return i.c.Del(ctx, key)
}

// hasChallenge checks if the body contains a challenge by regex matching
func hasChallenge(body []byte) bool {
	return challengeRegex.Match(body)
}
