// Package storage provides a client for the Skylift edge storage service.
//
// A bucket is a named container of key/content objects. Buckets carry an
// edge access mode controlling how they are exposed at the edge, and
// objects are opaque byte payloads stored and retrieved without any
// encoding transform.
//
// # Usage
//
//	apiClient, err := api.NewClient(baseURL, token, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := storage.NewClient(apiClient, logger)
//
//	bucket, err := store.CreateBucket(ctx, "assets", storage.AccessReadWrite)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = store.UploadObject(ctx, bucket.Name, "index.html", content)
//
// Bucket is a plain data value: object operations take the bucket name as
// an explicit parameter instead of binding it into a handle, which keeps
// the client stateless and easy to test against a local server.
//
// No identifier is validated locally; the remote service is authoritative
// for name uniqueness, key existence and access rules.
package storage
