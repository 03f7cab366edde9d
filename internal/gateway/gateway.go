// Package gateway talks to the remote inference service. Every call is a
// single JSON POST to {base}/{endpoint}; there are no retries and no
// client-side timeout.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	pe "github.com/shieldai/shield/internal/errors"
	"github.com/shieldai/shield/internal/logger"
)

// Endpoint names understood by the service.
const (
	EndpointChat    = "chat"
	EndpointPredict = "predict"
)

// maxErrorBody bounds how much of a non-2xx body ends up in an error.
const maxErrorBody = 512

// Client posts JSON to the inference service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client for the service at baseURL (an origin such as
// "http://127.0.0.1:8000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		// No Timeout: a request that never settles is left pending.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpointURL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Post sends payload as JSON to the named endpoint and decodes the JSON
// response body into out. Transport failures, non-2xx statuses and bodies
// that do not decode are all returned as errors.
func (c *Client) Post(ctx context.Context, endpoint string, payload, out any) error {
	log := logger.WithComponent("gateway")

	body, err := json.Marshal(payload)
	if err != nil {
		return pe.GatewayEncode(endpoint, err)
	}

	url := c.endpointURL(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return pe.GatewayTransport(endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug("request dispatched", "endpoint", endpoint, "url", url, "bytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "endpoint", endpoint, "error", err)
		return pe.GatewayTransport(endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("reading response failed", "endpoint", endpoint, "error", err)
		return pe.GatewayTransport(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("unexpected status", "endpoint", endpoint, "status", resp.StatusCode)
		return pe.GatewayStatus(endpoint, resp.StatusCode, truncate(string(raw), maxErrorBody))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn("malformed response", "endpoint", endpoint, "error", err)
		return pe.GatewayDecode(endpoint, err)
	}

	log.Debug("request settled", "endpoint", endpoint, "status", resp.StatusCode)
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
