package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAll(t *testing.T) {
	var mu sync.Mutex
	uploaded := make(map[string][]byte)

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/buckets/assets/objects/")
		if strings.Contains(key, "bad") {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"detail": "key rejected"})
			return
		}

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		mu.Lock()
		uploaded[key] = body
		mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{"state": "executed"})
	}))

	items := make([]UploadItem, 0, 30)
	for i := 0; i < 29; i++ {
		items = append(items, UploadItem{
			Key:     fmt.Sprintf("file-%02d.txt", i),
			Content: []byte(fmt.Sprintf("content %d", i)),
		})
	}
	items = append(items, UploadItem{Key: "bad-key", Content: []byte("x")})

	result, err := client.UploadAll(context.Background(), "assets", items, 5)
	require.NoError(t, err)

	assert.Equal(t, 30, result.Requested)
	assert.Equal(t, 29, result.Uploaded)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed, "bad-key")
	assert.Contains(t, result.Failed["bad-key"].Error(), "key rejected")

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, uploaded, 29)
}

func TestUploadAllEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	result, err := client.UploadAll(context.Background(), "assets", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Requested)
	assert.Equal(t, 0, result.Uploaded)
	assert.Empty(t, result.Failed)
}

func TestUploadAllCancelled(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"state": "executed"})
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []UploadItem{{Key: "a.txt", Content: []byte("a")}}
	result, err := client.UploadAll(ctx, "assets", items, 1)
	require.Error(t, err)
	assert.Equal(t, 0, result.Uploaded)
}
