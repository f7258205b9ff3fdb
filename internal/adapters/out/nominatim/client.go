// Package nominatim implements ports.Geocoder over the OpenStreetMap Nominatim
// search API.
package nominatim

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultTimeout bounds one search request.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// HTTPStatusError is returned for non-2xx responses.
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("nominatim: status %d: %s", e.Code, e.Body)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit caps outgoing requests per second across all callers of the
// client. Zero or negative disables the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithResultLimit sets the number of candidates requested; values below 1 are ignored.
func WithResultLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// Client searches addresses on a Nominatim server.
// Nominatim's usage policy requires an identifying User-Agent on every request.
type Client struct {
	baseURL   string
	userAgent string
	limit     int
	http      *http.Client
	limiter   *rate.Limiter
}

// New creates a Client for baseURL (DefaultBaseURL when empty).
func New(baseURL, userAgent string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limit:     1,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries /search for the free-text address and returns the candidates
// in server order. Candidates with missing or out-of-range coordinates are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]kernel.Coordinates, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := c.newSearchRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read nominatim response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return parseCandidates(body)
}

func (c *Client) newSearchRequest(ctx context.Context, query string) (*http.Request, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", fmt.Sprint(c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// parseCandidates reads a Nominatim result array. lat and lon are decimal strings.
func parseCandidates(body []byte) ([]kernel.Coordinates, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("nominatim: invalid json response")
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("nominatim: expected array, got %s", result.Type)
	}

	out := make([]kernel.Coordinates, 0, len(result.Array()))
	result.ForEach(func(_, item gjson.Result) bool {
		lat, lon := item.Get("lat"), item.Get("lon")
		if !lat.Exists() || !lon.Exists() {
			return true
		}
		if c, err := kernel.NewCoordinates(lat.Float(), lon.Float()); err == nil {
			out = append(out, c)
		}
		return true
	})

	return out, nil
}
