// Package wordpress implements the REST client for the WordPress backend:
// generic post-type CRUD, list query translation and error mapping.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/seasistemi/deliveryops/internal/auth"
)

// Observer counts upstream call outcomes.
type Observer interface {
	ObserveUpstream(backend string, status int)
}

// Client talks to the WordPress REST API.
type Client struct {
	baseURL  string
	hc       *http.Client
	logger   *slog.Logger
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithObserver wires upstream call metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: trimTrailingSlash(baseURL),
		hc:      &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// do issues a request, attaching the bearer token from context when present,
// and maps error statuses. The caller owns the response body.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body any) (*http.Response, error) {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("wordpress: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("wordpress: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress: %s %s: %w", method, endpoint, err)
	}
	if c.observer != nil {
		c.observer.ObserveUpstream("wordpress", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		apiErr := newAPIError(resp)
		if c.logger != nil {
			c.logger.Warn("wordpress request failed",
				slog.String("method", method),
				slog.String("endpoint", endpoint),
				slog.Int("status", resp.StatusCode))
		}
		return nil, apiErr
	}
	return resp, nil
}

func decodeInto(resp *http.Response, target any) error {
	defer resp.Body.Close()
	if target == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// Get issues a GET against an arbitrary wp-json endpoint and decodes the body.
func Get[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (T, error) {
	var out T
	resp, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return out, err
	}
	if err := decodeInto(resp, &out); err != nil {
		return out, fmt.Errorf("wordpress: decode response: %w", err)
	}
	return out, nil
}

// PostJSON issues a POST against an arbitrary wp-json endpoint and decodes the body.
func PostJSON[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	var out T
	resp, err := c.do(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return out, err
	}
	if err := decodeInto(resp, &out); err != nil {
		return out, fmt.Errorf("wordpress: decode response: %w", err)
	}
	return out, nil
}

// PostDiscard issues a POST and drops the response body.
func (c *Client) PostDiscard(ctx context.Context, endpoint string, body any) error {
	resp, err := c.do(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}

// GetDiscard issues a GET and drops the response body.
func (c *Client) GetDiscard(ctx context.Context, endpoint string) error {
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}

// ListPage is a page of a post collection merged with the out-of-band totals.
type ListPage[T any] struct {
	Data       []T `json:"data"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// ListPosts fetches one page of a post-type collection. Pagination totals come
// from the X-WP-Total and X-WP-TotalPages response headers; a missing header
// yields zero.
func ListPosts[T any](ctx context.Context, c *Client, postType string, q ListQuery) (ListPage[T], error) {
	var page ListPage[T]
	resp, err := c.do(ctx, http.MethodGet, "/wp-json/wp/v2/"+postType, q.values(), nil)
	if err != nil {
		return page, err
	}
	page.TotalItems = headerInt(resp, "X-WP-Total")
	page.TotalPages = headerInt(resp, "X-WP-TotalPages")
	if err := decodeInto(resp, &page.Data); err != nil {
		return page, fmt.Errorf("wordpress: decode %s collection: %w", postType, err)
	}
	return page, nil
}

// GetPost fetches a single post by ID.
func GetPost[T any](ctx context.Context, c *Client, postType string, id int) (T, error) {
	return Get[T](ctx, c, fmt.Sprintf("/wp-json/wp/v2/%s/%d", postType, id), nil)
}

// CreatePost creates a post of the given type. Repeated calls create
// duplicates; the backend offers no idempotency key.
func CreatePost[T any](ctx context.Context, c *Client, postType string, body any) (T, error) {
	return PostJSON[T](ctx, c, "/wp-json/wp/v2/"+postType, body)
}

// UpdatePost updates a post by ID.
func UpdatePost[T any](ctx context.Context, c *Client, postType string, id int, body any) (T, error) {
	var out T
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/wp-json/wp/v2/%s/%d", postType, id), nil, body)
	if err != nil {
		return out, err
	}
	if err := decodeInto(resp, &out); err != nil {
		return out, fmt.Errorf("wordpress: decode response: %w", err)
	}
	return out, nil
}

// DeletePost deletes a post by ID.
func (c *Client) DeletePost(ctx context.Context, postType string, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/wp-json/wp/v2/%s/%d", postType, id), nil, nil)
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}

// DeleteDiscard issues a DELETE against an arbitrary wp-json endpoint with
// query params and drops the response body.
func (c *Client) DeleteDiscard(ctx context.Context, endpoint string, params url.Values) error {
	resp, err := c.do(ctx, http.MethodDelete, endpoint, params, nil)
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}

func headerInt(resp *http.Response, name string) int {
	n, err := strconv.Atoi(resp.Header.Get(name))
	if err != nil {
		return 0
	}
	return n
}
