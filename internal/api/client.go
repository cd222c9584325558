// Package api is the typed client for the TuningGarage REST backend. Every
// request goes through the authenticated pipeline: the current token is
// snapshotted per request and attached as a bearer credential.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tuninggarage/internal/session"
)

// DefaultTimeout applies to connect, read and write as a whole-request bound.
const DefaultTimeout = 30 * time.Second

// Config configures the client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.tuninggarage.example/api/".
	BaseURL string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// LogLevel controls traffic logging (LogNone, LogBasic, LogBody).
	LogLevel LogLevel
}

// Client is the API gateway client. Use the capability accessors (Auth,
// Products, Cart, Orders, Social, Marketplace) rather than calling it raw.
type Client struct {
	baseURL string
	http    *http.Client

	auth        *AuthClient
	products    *ProductsClient
	cart        *CartClient
	orders      *OrdersClient
	social      *SocialClient
	marketplace *MarketplaceClient
}

// New builds a client over the given credential reader.
func New(creds session.Reader, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	var rt http.RoundTripper = &authTransport{creds: creds, next: http.DefaultTransport}
	rt = &loggingTransport{level: cfg.LogLevel, next: rt}

	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: rt,
		},
	}
	c.auth = &AuthClient{client: c}
	c.products = &ProductsClient{client: c}
	c.cart = &CartClient{client: c}
	c.orders = &OrdersClient{client: c}
	c.social = &SocialClient{client: c}
	c.marketplace = &MarketplaceClient{client: c}
	return c, nil
}

func (c *Client) Auth() *AuthClient               { return c.auth }
func (c *Client) Products() *ProductsClient       { return c.products }
func (c *Client) Cart() *CartClient               { return c.cart }
func (c *Client) Orders() *OrdersClient           { return c.orders }
func (c *Client) Social() *SocialClient           { return c.social }
func (c *Client) Marketplace() *MarketplaceClient { return c.marketplace }

// do performs a JSON request and returns the raw response body. Network
// failures and non-2xx statuses come back as transport *Error values.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req)
}

// send dispatches a prepared request (also used by the multipart upload).
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return data, nil
}
