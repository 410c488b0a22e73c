// Package fetch wraps page retrieval behind the pacing contract every
// extractor has to respect: one request at a time, each preceded by a
// randomized delay, with non-success responses surfaced as a typed error
// so callers can log and skip instead of aborting the run.
package fetch

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/sentinel/vlrstats/internal/cache"
)

// UserAgent is the default client identity sent with every request.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// FetchError reports a request that did not produce a usable page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches and parses pages with mandatory pacing. Not safe for
// concurrent use — the pipeline is strictly sequential by design.
type Client struct {
	http     *resty.Client
	limiter  *rate.Limiter
	delay    time.Duration
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables the Redis page cache. Cached pages still count
// against nothing: no delay is charged for a cache hit.
func WithCache(c *cache.RedisCache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithUserAgent overrides the default client identity.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.http.SetHeader("User-Agent", ua)
	}
}

// NewClient creates a fetch client with the given base delay between
// requests. The effective delay is the base ± 30% jitter; a rate limiter
// floors the request rate at 1/delay even if the jitter draws low.
func NewClient(delay time.Duration, opts ...Option) *Client {
	httpClient := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetTimeout(30 * time.Second)

	// Floor at the shortest gap the jitter can produce; the jittered
	// sleep in wait() normally dominates and the limiter only bites if
	// that sleep is ever skipped.
	var limiter *rate.Limiter
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay*7/10), 1)
	}

	c := &Client{
		http:    httpClient,
		limiter: limiter,
		delay:   delay,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetDocument fetches a URL and parses it. The jittered delay is applied
// before the request goes out, never after, so processing time between
// fetches is free.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if c.cache != nil {
		body, err := c.cache.GetPage(ctx, url)
		if err == nil {
			return goquery.NewDocumentFromReader(strings.NewReader(body))
		}
		if !cache.IsMiss(err) {
			log.Printf("⚠️  Page cache read failed for %s: %v", url, err)
		}
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	body := string(resp.Body())

	if c.cache != nil {
		if err := c.cache.SetPage(ctx, url, body, c.cacheTTL); err != nil {
			log.Printf("⚠️  Page cache write failed for %s: %v", url, err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	return doc, nil
}

// wait sleeps the base delay ± 30% jitter, honoring cancellation.
func (c *Client) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	jitter := time.Duration(float64(c.delay) * 0.3 * (2*rand.Float64() - 1))
	select {
	case <-time.After(c.delay + jitter):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
