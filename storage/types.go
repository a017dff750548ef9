package storage

import "github.com/edgectl/edgectl/api"

// EdgeAccess controls how a bucket is exposed at the edge.
type EdgeAccess string

const (
	// AccessReadOnly allows edge reads but no writes
	AccessReadOnly EdgeAccess = "read_only"
	// AccessReadWrite allows edge reads and writes
	AccessReadWrite EdgeAccess = "read_write"
	// AccessRestricted blocks direct edge access; only authenticated API
	// calls may touch the bucket
	AccessRestricted EdgeAccess = "restricted"
)

// Valid reports whether the access mode is one the platform accepts.
func (a EdgeAccess) Valid() bool {
	switch a {
	case AccessReadOnly, AccessReadWrite, AccessRestricted:
		return true
	}
	return false
}

// Bucket is a named storage container. It is a plain data value; object
// operations take the bucket name explicitly rather than closing over it.
type Bucket struct {
	Name       string     `json:"name"`
	EdgeAccess EdgeAccess `json:"edge_access"`
}

// Object describes a stored key/content pair. Content is only populated
// by GetObject, which returns the raw bytes untouched.
type Object struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
	Content      []byte `json:"-"`
}

// BucketPage is one page of a bucket listing.
type BucketPage struct {
	Links   api.Links `json:"links"`
	Count   int       `json:"count"`
	Results []Bucket  `json:"results"`
}

// ObjectPage is one page of an object listing.
type ObjectPage struct {
	Links   api.Links `json:"links"`
	Count   int       `json:"count"`
	Results []Object  `json:"results"`
}

// bucketEnvelope wraps single-bucket responses.
type bucketEnvelope struct {
	Data Bucket `json:"data"`
}
