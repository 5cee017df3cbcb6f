package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is used when no backend URL is configured.
	DefaultBaseURL = "http://localhost:8080/api"
	defaultTimeout = 15 * time.Second
	userAgent      = "petcli/1.0"
)

// ErrNotFound matches a StatusError carrying 404.
var ErrNotFound = errors.New("not found")

// ErrMalformedResponse wraps bodies that are not the JSON shape the client expects.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError reports a non-200 response from the backend.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is an HTTP client for the shop backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a backend client. An empty baseURL selects DefaultBaseURL;
// an empty token sends no Authorization header.
func NewClient(baseURL, token string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed",
			zap.String("url", reqURL),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		zap.String("method", req.Method),
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func decodeStrict(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w: %w", ErrMalformedResponse, err)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: %w: trailing JSON content", ErrMalformedResponse)
	}
	return nil
}

// ItemQuery narrows an item listing on the backend side.
type ItemQuery struct {
	Keyword  string
	Category string
}

// FetchItems lists items. The backend answers with either a bare array or an
// envelope object.
func (c *Client) FetchItems(ctx context.Context, q ItemQuery) ([]Item, error) {
	params := url.Values{}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	reqURL := c.baseURL + "/items"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Item
		if err := decodeStrict(trimmed, &items); err != nil {
			return nil, fmt.Errorf("fetching items: %w", err)
		}
		return items, nil
	}

	var env ItemsResponse
	if err := decodeStrict(trimmed, &env); err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	return env.List(), nil
}

// FetchItem fetches one item by ID. The record may be wrapped in {"data": ...}.
func (c *Client) FetchItem(ctx context.Context, id string) (*Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("fetching item: empty id")
	}

	body, err := c.get(ctx, c.baseURL+"/items/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("fetching item %s: %w", id, err)
	}

	payload := bytes.TrimSpace(body)
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &env); err == nil {
		if data := bytes.TrimSpace(env.Data); len(data) > 0 && data[0] == '{' {
			payload = data
		}
	}

	var item Item
	if err := decodeStrict(payload, &item); err != nil {
		return nil, fmt.Errorf("fetching item %s: %w", id, err)
	}
	return &item, nil
}
