package cubeclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
)

// Client is a reusable cube service client.
type Client struct {
	httpClient     *http.Client
	defaultHeaders http.Header
	retryPolicy    RetryPolicy
	logger         Logger

	mu      sync.RWMutex
	baseURL *url.URL
}

// New constructs a Client with the provided options.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient:     &http.Client{},
		defaultHeaders: make(http.Header),
		retryPolicy:    DefaultRetryPolicy,
	}
	c.defaultHeaders.Set("Accept", "application/json")
	c.defaultHeaders.Set("User-Agent", "go-cube-client/0.1")

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.baseURL == nil {
		return nil, ErrInvalidBaseURL
	}
	if c.httpClient == nil {
		return nil, ErrNilHTTPClient
	}
	return c, nil
}

// SetBaseURL replaces the base URL for subsequent requests. Sessions
// restored from cached configuration use this to apply a command-line
// override before the first call. Nothing is persisted.
func (c *Client) SetBaseURL(raw string) error {
	u, err := parseBaseURL(raw)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.baseURL = u
	c.mu.Unlock()
	return nil
}

// BaseURL returns the currently configured base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Cubes returns a service for cube listing and manifest retrieval.
func (c *Client) Cubes() *CubeService {
	return &CubeService{client: c}
}

// Query returns a service for executing queries against a cube.
func (c *Client) Query() *QueryService {
	return &QueryService{client: c}
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrInvalidBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, ErrInvalidBaseURL
	}
	return u, nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	c.mu.RLock()
	u := *c.baseURL
	c.mu.RUnlock()
	u.Path = path.Join(u.Path, endpoint)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, opts []RequestOption) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint, query), nil)
	if err != nil {
		return nil, err
	}

	for key, values := range c.defaultHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.logger != nil {
		c.logger.Debugf("cubeclient: %s %s", req.Method, req.URL)
	}

	resp, err := c.retry(ctx, func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr != nil {
		return nil, readErr
	}

	apiErr := &APIError{Status: resp.StatusCode, Raw: data}
	if err := json.Unmarshal(data, apiErr); err != nil {
		// Fallback to plain message.
		apiErr.Detail = strings.TrimSpace(string(data))
	}
	if c.logger != nil {
		c.logger.Errorf("cubeclient: request failed status=%d", resp.StatusCode)
	}
	return nil, apiErr
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any, opts []RequestOption) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, query, opts)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func cloneValues(values url.Values) url.Values {
	if len(values) == 0 {
		return nil
	}
	cp := make(url.Values, len(values))
	for key, v := range values {
		dst := make([]string, len(v))
		copy(dst, v)
		cp[key] = dst
	}
	return cp
}
