package nbi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the default base URL for the ACS northbound API.
	DefaultBaseURL = "http://localhost:7557"

	// TotalCountHeader carries the total matching document count on
	// paginated query responses.
	TotalCountHeader = "X-Total-Count"
)

// RawDevice is an unprocessed device document as returned by the NBI.
type RawDevice map[string]any

// DeviceQuery describes a paginated device listing request.
type DeviceQuery struct {
	Filter     map[string]any // JSON filter, url-encoded into the query parameter
	Limit      int
	Skip       int
	Projection []string       // parameter paths to project, joined by comma
	Sort       map[string]int // field -> 1 (asc) / -1 (desc)
}

// Client is an HTTP client for the ACS northbound API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing with a mock server).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a new NBI client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured NBI base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// QueryDevices retrieves one page of device documents.
// Returns the raw documents and the total matching count reported in the
// response header. Network failures wrap ErrUnavailable.
func (c *Client) QueryDevices(ctx context.Context, q *DeviceQuery) ([]RawDevice, int, error) {
	if q == nil {
		q = &DeviceQuery{}
	}

	params := url.Values{}
	if q.Filter != nil {
		filter, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode query filter: %w", err)
		}
		params.Set("query", string(filter))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if len(q.Projection) > 0 {
		params.Set("projection", strings.Join(q.Projection, ","))
	}
	if len(q.Sort) > 0 {
		sort, err := json.Marshal(q.Sort)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode sort: %w", err)
		}
		params.Set("sort", string(sort))
	}

	endpoint := c.baseURL + "/devices"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		//nolint:errcheck
		resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, 0, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var devices []RawDevice
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, 0, fmt.Errorf("failed to decode devices: %w", err)
	}

	total := parseTotal(resp.Header, len(devices))
	return devices, total, nil
}

// parseTotal reads the total matching count from the response headers,
// falling back to the page length when the header is absent or malformed.
func parseTotal(h http.Header, fallback int) int {
	v := h.Get(TotalCountHeader)
	if v == "" {
		v = h.Get("total")
	}
	if v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
