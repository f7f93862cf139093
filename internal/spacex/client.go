// Package spacex fetches launch records from the public SpaceX v3 API.
//
// Client performs the HTTP request. Loader wraps any Fetcher and guarantees a
// single fetch per process: failures are logged and degrade to an empty
// collection, there is no retry.
package spacex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/launchdeck/internal/launch"
	"github.com/rshade/launchdeck/pkg/version"
)

const (
	// DefaultBaseURL is the public API host.
	DefaultBaseURL = "https://api.spacexdata.com"

	// DefaultTimeout bounds the single launches request.
	DefaultTimeout = 15 * time.Second

	launchesPath = "/v3/launches"

	// maxErrorBodyBytes caps how much of an error response is kept for logs.
	maxErrorBodyBytes = 512
)

// Fetch errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecode           = errors.New("decoding launches response")
)

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

// Is lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Fetcher returns the full launch collection.
type Fetcher interface {
	FetchLaunches(ctx context.Context) ([]launch.Record, error)
}

// Client talks to the launches endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the request timeout. The current HTTP client is copied
// first so a shared client such as http.DefaultClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// NewClient creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LaunchesURL returns the request URL: all launches, newest first, with ids.
func (c *Client) LaunchesURL() string {
	q := url.Values{}
	q.Set("sort", "launch_date_utc")
	q.Set("order", "desc")
	q.Set("id", "true")
	return c.baseURL + launchesPath + "?" + q.Encode()
}

// FetchLaunches issues one GET and decodes the full collection.
func (c *Client) FetchLaunches(ctx context.Context) ([]launch.Record, error) {
	endpoint := c.LaunchesURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building launches request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting launches: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("launches response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var records []launch.Record
	if decodeErr := json.NewDecoder(resp.Body).Decode(&records); decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, decodeErr)
	}

	return records, nil
}
