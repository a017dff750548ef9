package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/edgectl/edgectl/api"
)

// Client wraps the bucket and object endpoints of the storage service.
type Client struct {
	api    *api.Client
	logger zerolog.Logger
}

// NewClient creates a storage client on top of a shared API client.
func NewClient(apiClient *api.Client, logger zerolog.Logger) *Client {
	return &Client{api: apiClient, logger: logger}
}

// ListBuckets retrieves one page of buckets. The zero ListOptions value
// requests page 1 at the default page size.
func (c *Client) ListBuckets(ctx context.Context, opts api.ListOptions) (*BucketPage, error) {
	const op = "get buckets"

	resp, err := c.api.Do(ctx, http.MethodGet, "/buckets", opts.Values(), nil, "")
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var page BucketPage
	if err := api.Decode(resp, op, api.HasResults, &page); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", page.Count).Msg("Listed buckets")
	return &page, nil
}

// CreateBucket creates a bucket with the given access mode. Name and
// access validity are left to the remote service.
func (c *Client) CreateBucket(ctx context.Context, name string, access EdgeAccess) (*Bucket, error) {
	const op = "post bucket"

	body, err := jsonBody(map[string]any{"name": name, "edge_access": access})
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	resp, err := c.api.Do(ctx, http.MethodPost, "/buckets", nil, body, api.ContentTypeJSON)
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var env bucketEnvelope
	if err := api.Decode(resp, op, api.HasData, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetBucket retrieves a bucket by name.
func (c *Client) GetBucket(ctx context.Context, name string) (*Bucket, error) {
	const op = "get bucket"

	resp, err := c.api.Do(ctx, http.MethodGet, "/buckets/"+url.PathEscape(name), nil, nil, "")
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var env bucketEnvelope
	if err := api.Decode(resp, op, api.HasData, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateBucket changes the access mode of an existing bucket.
func (c *Client) UpdateBucket(ctx context.Context, name string, access EdgeAccess) (*Bucket, error) {
	const op = "patch bucket"

	body, err := jsonBody(map[string]any{"edge_access": access})
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	resp, err := c.api.Do(ctx, http.MethodPatch, "/buckets/"+url.PathEscape(name), nil, body, api.ContentTypeJSON)
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var env bucketEnvelope
	if err := api.Decode(resp, op, api.HasData, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteBucket removes a bucket. The remote service decides whether
// non-empty buckets may be deleted.
func (c *Client) DeleteBucket(ctx context.Context, name string) error {
	const op = "delete bucket"

	resp, err := c.api.Do(ctx, http.MethodDelete, "/buckets/"+url.PathEscape(name), nil, nil, "")
	if err != nil {
		return api.Wrap(err, op)
	}
	if !resp.OK() {
		return api.ErrorFrom(resp.Body, op)
	}

	c.logger.Debug().Str("bucket", name).Msg("Deleted bucket")
	return nil
}

// ListObjects retrieves one page of objects in a bucket.
func (c *Client) ListObjects(ctx context.Context, bucket string, opts api.ListOptions) (*ObjectPage, error) {
	const op = "get objects"

	endpoint := fmt.Sprintf("/buckets/%s/objects", url.PathEscape(bucket))
	resp, err := c.api.Do(ctx, http.MethodGet, endpoint, opts.Values(), nil, "")
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var page ObjectPage
	if err := api.Decode(resp, op, api.HasResults, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UploadObject stores raw content under a key. The bytes are sent as an
// octet-stream with no encoding transform.
func (c *Client) UploadObject(ctx context.Context, bucket, key string, content []byte) error {
	return c.putObject(ctx, http.MethodPost, "post object", bucket, key, content)
}

// ReplaceObject overwrites the content stored under an existing key.
func (c *Client) ReplaceObject(ctx context.Context, bucket, key string, content []byte) error {
	return c.putObject(ctx, http.MethodPut, "put object", bucket, key, content)
}

func (c *Client) putObject(ctx context.Context, method, op, bucket, key string, content []byte) error {
	endpoint := objectPath(bucket, key)
	resp, err := c.api.Do(ctx, method, endpoint, nil, bytes.NewReader(content), api.ContentTypeOctetStream)
	if err != nil {
		return api.Wrap(err, op)
	}
	// Raw uploads answer with an execution state and no entity payload.
	if err := api.Decode(resp, op, api.HasState, nil); err != nil {
		return err
	}

	c.logger.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Int("bytes", len(content)).
		Msg("Stored object")
	return nil
}

// GetObject retrieves the raw content stored under a key. The body is
// treated as opaque bytes and is never JSON-parsed.
func (c *Client) GetObject(ctx context.Context, bucket, key string) (*Object, error) {
	const op = "get object"

	resp, err := c.api.Do(ctx, http.MethodGet, objectPath(bucket, key), nil, nil, "")
	if err != nil {
		return nil, api.Wrap(err, op)
	}
	if !resp.OK() {
		return nil, api.ErrorFrom(resp.Body, op)
	}

	return &Object{Key: key, Size: int64(len(resp.Body)), Content: resp.Body}, nil
}

// DeleteObject removes the object stored under a key.
func (c *Client) DeleteObject(ctx context.Context, bucket, key string) error {
	const op = "delete object"

	resp, err := c.api.Do(ctx, http.MethodDelete, objectPath(bucket, key), nil, nil, "")
	if err != nil {
		return api.Wrap(err, op)
	}
	if !resp.OK() {
		return api.ErrorFrom(resp.Body, op)
	}
	return nil
}

func objectPath(bucket, key string) string {
	return fmt.Sprintf("/buckets/%s/objects/%s", url.PathEscape(bucket), url.PathEscape(key))
}

func jsonBody(payload any) (*bytes.Reader, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
