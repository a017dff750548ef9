package storage

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultUploadConcurrency bounds how many uploads run at once.
const DefaultUploadConcurrency = 10

// UploadItem pairs an object key with its content.
type UploadItem struct {
	Key     string
	Content []byte
}

// UploadResult summarizes a batch upload.
type UploadResult struct {
	Requested int
	Uploaded  int
	Failed    map[string]error
}

// UploadAll stores every item in the bucket with bounded concurrency.
// Individual failures are collected per key rather than aborting the
// batch; the first context cancellation stops remaining work.
func (c *Client) UploadAll(ctx context.Context, bucket string, items []UploadItem, concurrency int) (*UploadResult, error) {
	result := &UploadResult{
		Requested: len(items),
		Failed:    make(map[string]error),
	}
	if len(items) == 0 {
		return result, nil
	}

	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex

	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := c.UploadObject(ctx, bucket, item.Key, item.Content)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("bucket", bucket).
					Str("key", item.Key).
					Msg("Failed to upload object")
				result.Failed[item.Key] = err
				return nil
			}
			result.Uploaded++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}
