// Package backend implements the HTTP client for the starcast generation
// backend. Every network call funnels through a single envelope that scopes
// the loading indicator around the request, enforces a minimum visible
// duration, and normalizes the heterogeneous success/error payloads into
// one Outcome shape.
package backend

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultFloor is the minimum visible duration of a loading state. The
// floor runs concurrently with the request, so it never adds latency to
// calls that are already slower than it.
const DefaultFloor = 500 * time.Millisecond

// Indicator receives loading-state transitions for in-flight calls.
// Implementations must tolerate Stop without a matching Start.
type Indicator interface {
	Start(label string)
	Stop()
}

// Target receives rendered failure messages. The envelope reports every
// handled failure here so call sites never re-implement error display.
type Target interface {
	RenderError(msg string)
}

type nopIndicator struct{}

func (nopIndicator) Start(string) {}
func (nopIndicator) Stop()        {}

type nopTarget struct{}

func (nopTarget) RenderError(string) {}

// Client talks to the starcast backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	floor      time.Duration
	indicator  Indicator
	target     Target
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithUI attaches the loading indicator and error target used by every call.
func WithUI(ind Indicator, tgt Target) Option {
	return func(c *Client) {
		if ind != nil {
			c.indicator = ind
		}
		if tgt != nil {
			c.target = tgt
		}
	}
}

// WithFloor overrides the minimum visible duration.
func WithFloor(d time.Duration) Option {
	return func(c *Client) { c.floor = d }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client targeting the given backend base URL. The timeout
// bounds each individual request; generation jobs can run for minutes, so
// callers should size it generously.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		floor:      DefaultFloor,
		indicator:  nopIndicator{},
		target:     nopTarget{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
