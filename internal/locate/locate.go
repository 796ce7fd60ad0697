// Package locate resolves the observer's location and UTC offset from
// an IP geolocation service.
package locate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultURL is the ipapi.co JSON endpoint.
	DefaultURL = "https://ipapi.co/json/"

	// DefaultTimeout for geolocation requests.
	DefaultTimeout = 5 * time.Second

	// OffsetTolerance is the agreement threshold, in hours, between the
	// network-reported UTC offset and the host clock's.
	OffsetTolerance = 0.01
)

// ErrLookup reports a failed geolocation lookup, including failures the
// service signals in-band.
var ErrLookup = errors.New("geolocation lookup failed")

// Result is a resolved observer location.
type Result struct {
	City      string
	Latitude  float64
	Longitude float64
	UTCOffset float64 // hours east of UTC
}

// Provider resolves the observer's location. The CLI accepts any
// implementation so tests can substitute a fixed result.
type Provider interface {
	Locate(ctx context.Context) (*Result, error)
}

// Client queries an IP geolocation HTTP endpoint.
type Client struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithURL sets a custom geolocation endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a geolocation client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		url:     DefaultURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

// response mirrors the service's JSON document. The UTC offset arrives
// as a string ("+0100", "+01:00") or a bare number, so it is kept raw
// until parsed.
type response struct {
	City      string          `json:"city"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	UTCOffset json.RawMessage `json:"utc_offset"`
	Error     bool            `json:"error"`
	Reason    string          `json:"reason"`
}

// Locate queries the geolocation endpoint and returns the resolved
// location. Failures, including errors the service reports in its own
// payload, wrap ErrLookup.
func (c *Client) Locate(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-almanac/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrLookup, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var doc response
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrLookup, err)
	}
	if doc.Error {
		reason := doc.Reason
		if reason == "" {
			reason = "service reported an error"
		}
		return nil, fmt.Errorf("%w: %s", ErrLookup, reason)
	}

	offset, err := parseUTCOffset(rawScalar(doc.UTCOffset))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	return &Result{
		City:      doc.City,
		Latitude:  doc.Latitude,
		Longitude: doc.Longitude,
		UTCOffset: offset,
	}, nil
}

// rawScalar returns the text of a raw JSON scalar, unquoting strings.
func rawScalar(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// parseUTCOffset parses a UTC offset given as signed HHMM ("+0530"),
// signed HH:MM ("-09:30"), or decimal hours ("1.5").
func parseUTCOffset(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty utc offset")
	}

	sign := 1.0
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}

	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err1 := strconv.Atoi(h)
		mins, err2 := strconv.Atoi(m)
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("malformed utc offset %q", raw)
		}
		return sign * (float64(hours) + float64(mins)/60), nil
	}

	if len(s) == 4 && !strings.Contains(s, ".") {
		hours, err1 := strconv.Atoi(s[:2])
		mins, err2 := strconv.Atoi(s[2:])
		if err1 == nil && err2 == nil {
			return sign * (float64(hours) + float64(mins)/60), nil
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed utc offset %q", raw)
	}
	return sign * v, nil
}

// SystemOffset returns the host clock's UTC offset at now, in hours.
func SystemOffset(now time.Time) float64 {
	_, sec := now.Zone()
	return float64(sec) / 3600
}

// ReconcileOffset chooses between the network-reported UTC offset and
// the host clock's. The network value always wins: it matches the
// located coordinates. The mismatch flag reports a disagreement beyond
// OffsetTolerance so callers can log it.
func ReconcileOffset(network, system float64) (chosen float64, mismatch bool) {
	return network, math.Abs(network-system) > OffsetTolerance
}
