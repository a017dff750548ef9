package purge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edgectl/edgectl/api"
)

// purgeMethod is the only invalidation method the platform accepts.
const purgeMethod = "delete"

// Request is the payload accepted by every purge endpoint. Exactly one of
// URLs and CacheKeys is populated depending on the purge kind.
type Request struct {
	URLs      []string `json:"urls,omitempty"`
	CacheKeys []string `json:"cache_keys,omitempty"`
	Method    string   `json:"method"`
}

// Receipt confirms an accepted purge request.
type Receipt struct {
	State string `json:"state"`
	Data  struct {
		URLs      []string `json:"urls,omitempty"`
		CacheKeys []string `json:"cache_keys,omitempty"`
		Method    string   `json:"method"`
	} `json:"data"`
}

// Client wraps the cache purge endpoints.
type Client struct {
	api    *api.Client
	logger zerolog.Logger
}

// NewClient creates a purge client on top of a shared API client.
func NewClient(apiClient *api.Client, logger zerolog.Logger) *Client {
	return &Client{api: apiClient, logger: logger}
}

// PurgeURL invalidates cached content by exact URL.
func (c *Client) PurgeURL(ctx context.Context, urls []string) (*Receipt, error) {
	return c.purge(ctx, "post purge url", "/purge/url", Request{URLs: urls, Method: purgeMethod})
}

// PurgeCacheKey invalidates cached content by cache key.
func (c *Client) PurgeCacheKey(ctx context.Context, keys []string) (*Receipt, error) {
	return c.purge(ctx, "post purge cachekey", "/purge/cachekey", Request{CacheKeys: keys, Method: purgeMethod})
}

// PurgeWildcard invalidates every cached URL matching a wildcard pattern.
// The platform accepts a single pattern per request.
func (c *Client) PurgeWildcard(ctx context.Context, pattern string) (*Receipt, error) {
	return c.purge(ctx, "post purge wildcard", "/purge/wildcard", Request{URLs: []string{pattern}, Method: purgeMethod})
}

func (c *Client) purge(ctx context.Context, op, endpoint string, req Request) (*Receipt, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	resp, err := c.api.Do(ctx, http.MethodPost, endpoint, nil, bytes.NewReader(payload), api.ContentTypeJSON)
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var receipt Receipt
	if err := api.Decode(resp, op, api.HasState, &receipt); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("state", receipt.State).
		Msg("Purge accepted")
	return &receipt, nil
}
