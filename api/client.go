package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ContentTypeJSON is used for structured request bodies.
	ContentTypeJSON = "application/json"
	// ContentTypeOctetStream is used for raw object content uploads.
	ContentTypeOctetStream = "application/octet-stream"

	defaultTimeout = 30 * time.Second

	// debugMaxResults caps how many array entries the debug logger prints.
	debugMaxResults = 10
)

// Client issues authenticated requests against a platform origin. It holds
// no per-call state; every method is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	debug      bool
	httpClient *http.Client
	logger     zerolog.Logger
}

// Response is the raw outcome of a single round trip.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a success status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient creates a Client for the given base URL and credential. The
// base URL is injected rather than resolved internally so tests can point
// the client at a local server; use Environment.BaseURL to obtain the
// fixed platform origins.
func NewClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}

	baseURL = strings.TrimRight(baseURL, "/")

	client := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the origin the client issues requests against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs a single request and returns the raw response. Headers
// always include Accept; Authorization carries the literal
// "Token <credential>" scheme when a credential is configured, and
// Content-Type is set only when a body is present. Network failures
// propagate unwrapped; callers attach the operation label via Wrap.
func (c *Client) Do(ctx context.Context, method, endpoint string, params url.Values, body io.Reader, contentType string) (*Response, error) {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", ContentTypeJSON)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.debug {
		c.logger.Debug().
			Str("method", method).
			Str("url", requestURL).
			Msg("API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.debug {
		c.logResponse(method, endpoint, resp.StatusCode, raw)
	}

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}

// logResponse prints the raw response at debug level. Large results/data
// arrays are truncated to debugMaxResults entries in the log output only;
// the returned body is never modified.
func (c *Client) logResponse(method, endpoint string, status int, body []byte) {
	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", status).
		Interface("response", truncatePayload(body)).
		Msg("API response")
}

func truncatePayload(body []byte) any {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		text := string(body)
		if len(text) > 512 {
			text = text[:512] + "..."
		}
		return text
	}

	for _, field := range []string{"results", "data"} {
		if entries, ok := payload[field].([]any); ok && len(entries) > debugMaxResults {
			payload[field] = entries[:debugMaxResults]
		}
	}

	return payload
}
