package storage

import (
	"context"

	"github.com/edgectl/edgectl/api"
)

// API defines the interface for storage operations
type API interface {
	// ListBuckets retrieves one page of buckets
	ListBuckets(ctx context.Context, opts api.ListOptions) (*BucketPage, error)

	// CreateBucket creates a bucket with the given access mode
	CreateBucket(ctx context.Context, name string, access EdgeAccess) (*Bucket, error)

	// GetBucket retrieves a bucket by name
	GetBucket(ctx context.Context, name string) (*Bucket, error)

	// UpdateBucket changes the access mode of an existing bucket
	UpdateBucket(ctx context.Context, name string, access EdgeAccess) (*Bucket, error)

	// DeleteBucket removes a bucket
	DeleteBucket(ctx context.Context, name string) error

	// ListObjects retrieves one page of objects in a bucket
	ListObjects(ctx context.Context, bucket string, opts api.ListOptions) (*ObjectPage, error)

	// UploadObject stores raw content under a key
	UploadObject(ctx context.Context, bucket, key string, content []byte) error

	// ReplaceObject overwrites the content stored under an existing key
	ReplaceObject(ctx context.Context, bucket, key string, content []byte) error

	// GetObject retrieves the raw content stored under a key
	GetObject(ctx context.Context, bucket, key string) (*Object, error)

	// DeleteObject removes the object stored under a key
	DeleteObject(ctx context.Context, bucket, key string) error
}

var _ API = (*Client)(nil)
