package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// DefaultEndpoint serves the quote JSON.
const DefaultEndpoint = "https://www.kurtsley.net"

// maxBodyBytes bounds how much of a response is read before decoding.
const maxBodyBytes = 1 << 20

// Client fetches quotes over HTTP.
type Client struct {
	// Endpoint is the URL queried with GET.
	Endpoint string

	http *retryablehttp.Client
	now  func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds a single HTTP attempt. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = d
	}
}

// WithRetries sets how many times a failed request is retried within one Fetch.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// WithRetryWait sets the wait bounds between HTTP retries.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = min
		c.http.RetryWaitMax = max
	}
}

// WithLogger routes the HTTP client's retry logging to log.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.http.Logger = leveledLogger{log.Sugar()}
	}
}

// WithClock overrides the clock used to stamp FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	// The default logger writes to stderr, which belongs to the TUI.
	rc.Logger = nil
	rc.RetryMax = 2
	// Hand the last response back once retries run out so its status is kept.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{
		Endpoint: endpoint,
		http:     rc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET and decodes the body.
func (c *Client) Fetch(ctx context.Context) (Quote, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return Quote{}, &FetchError{Endpoint: c.Endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, &FetchError{Endpoint: c.Endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quote{}, &FetchError{Endpoint: c.Endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Quote{}, &FetchError{Endpoint: c.Endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	q, err := Decode(body)
	if err != nil {
		return Quote{}, err
	}
	q.FetchedAt = c.now()
	return q, nil
}

// Decode parses a quote body. price and percent_change_24h are required;
// percent_change_1h may be absent.
func Decode(body []byte) (Quote, error) {
	var w wireQuote
	if err := json.Unmarshal(body, &w); err != nil {
		return Quote{}, &DecodeError{Err: err}
	}
	if w.Price == nil {
		return Quote{}, &DecodeError{Err: errors.New("missing field price")}
	}
	if w.Change24h == nil {
		return Quote{}, &DecodeError{Err: errors.New("missing field percent_change_24h")}
	}
	return Quote{
		Price:     *w.Price,
		Change1h:  w.Change1h,
		Change24h: *w.Change24h,
	}, nil
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
