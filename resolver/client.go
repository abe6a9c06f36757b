// Package resolver builds, issues and retries requests against the remote media resolver.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rko-cli/rko/auth"
	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/internal/cache"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/network"
	"github.com/rko-cli/rko/where"
	"github.com/spf13/viper"
)

// maxResponseSize bounds the resolver document read into memory.
const maxResponseSize = 8 << 20

// Options configures a Client. Zero values fall back to the built-in defaults,
// except Retries where zero means a single attempt.
type Options struct {
	BaseURL    string
	APIKey     string
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      *cache.Cache

	// NewTimer supplies the timer that waits between attempts. Nil uses a real timer.
	NewTimer func() backoff.Timer
}

// Client resolves source URLs through the remote resolver.
type Client struct {
	opts Options
}

// NewClient returns a client with defaults applied to opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = constant.ResolverBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.APIKey == "" {
		opts.APIKey = constant.ResolverAPIKey
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = network.Client
	}

	return &Client{opts: opts}
}

// FromConfig returns a client configured from the active settings.
// A key stored in the system keyring takes precedence over the configured one.
func FromConfig() *Client {
	opts := Options{
		BaseURL:    viper.GetString(key.ResolverBaseURL),
		APIKey:     auth.APIKey().OrElse(viper.GetString(key.ResolverAPIKey)),
		Retries:    viper.GetInt(key.ResolverRetries),
		RetryDelay: time.Duration(viper.GetInt(key.ResolverRetryDelayMs)) * time.Millisecond,
		Timeout:    time.Duration(viper.GetInt(key.ResolverTimeoutMs)) * time.Millisecond,
		HTTPClient: network.New(viper.GetBool(key.NetworkTLSFingerprint)),
	}

	if viper.GetBool(key.ResolverCache) {
		ttl := time.Duration(viper.GetInt(key.ResolverCacheTTLHours)) * time.Hour
		opts.Cache = cache.New(where.Responses(), ttl)
	}

	return NewClient(opts)
}

// BaseURL returns the resolver base the proxy endpoints hang off.
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}

// RequestURL returns the resolver URL for source.
func (c *Client) RequestURL(source string) string {
	query := url.Values{}
	query.Set("api_key", c.opts.APIKey)
	query.Set("vkr", source)
	return c.opts.BaseURL + "?" + query.Encode()
}

// Resolve fetches the resolver document for sourceURL.
// Failed attempts are retried with exponential backoff; intermediate failures are never surfaced.
// After the last retry a *NetworkError is returned. A 2xx body that cannot be decoded
// is not retried and fails with ErrMalformedResponse.
func (c *Client) Resolve(ctx context.Context, sourceURL string) (*Response, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, ErrInvalidInput
	}

	cacheKey := cache.GenerateKey(sourceURL)
	if c.opts.Cache != nil {
		var cached Response
		if c.opts.Cache.Read(cacheKey, &cached) && cached.Data != nil {
			log.Debugf("resolver: cache hit for %s", sourceURL)
			return &cached, nil
		}
	}

	requestURL := c.RequestURL(sourceURL)
	policy := backoff.WithContext(backoff.WithMaxRetries(Policy(c.opts.RetryDelay), uint64(c.opts.Retries)), ctx)

	var (
		resp     *Response
		last     *attemptError
		attempts int
	)
	operation := func() error {
		attempts++
		decoded, err := c.attempt(ctx, requestURL)
		if err == nil {
			resp = decoded
			return nil
		}

		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		log.Warnf("resolver: attempt %d/%d failed: %s", attempts, c.opts.Retries+1, err)
		last = err
		if err.malformed {
			return backoff.Permanent(fmt.Errorf("%w: %w", ErrMalformedResponse, err.err))
		}
		return err
	}
	notify := func(_ error, delay time.Duration) {
		log.Infof("resolver: retrying in %s (%d attempts left)", delay, c.opts.Retries+1-attempts)
	}

	var timer backoff.Timer
	if c.opts.NewTimer != nil {
		timer = c.opts.NewTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, policy, notify, timer)
	switch {
	case err == nil:
		if c.opts.Cache != nil && resp.Data != nil {
			if err := c.opts.Cache.Write(cacheKey, resp); err != nil {
				log.Warnf("resolver: cache write: %s", err)
			}
		}
		return resp, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, ErrMalformedResponse):
		return nil, err
	}

	return nil, &NetworkError{
		Status:     last.status,
		StatusText: last.statusText,
		Attempts:   attempts,
		Err:        last.err,
	}
}

// attemptError carries the outcome of a single failed attempt.
type attemptError struct {
	status     int
	statusText string
	err        error

	// malformed marks a successful response whose body could not be decoded.
	malformed bool
}

func (e *attemptError) Error() string {
	if e.status == 0 {
		return e.err.Error()
	}
	return fmt.Sprintf("HTTP %d: %s", e.status, e.err)
}

func (c *Client) attempt(ctx context.Context, requestURL string) (*Response, *attemptError) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &attemptError{err: err}
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &attemptError{statusText: "timeout", err: err}
		}
		return nil, &attemptError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, &attemptError{
			status:     resp.StatusCode,
			statusText: http.StatusText(resp.StatusCode),
			err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var decoded Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&decoded); err != nil {
		return nil, &attemptError{
			status:     resp.StatusCode,
			statusText: "invalid JSON",
			err:        fmt.Errorf("decode response: %w", err),
			malformed:  true,
		}
	}

	return &decoded, nil
}
