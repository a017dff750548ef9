package edgesql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgectl/edgectl/api"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient, err := api.NewClient(server.URL, "test-token", zerolog.Nop())
	require.NoError(t, err)

	return NewClient(apiClient, zerolog.Nop())
}

func TestCreateDatabase(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases", r.URL.Path)
		assert.Equal(t, "Token test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "my-db", body["name"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"state": "pending",
			"data": map[string]any{
				"id":         42,
				"name":       "my-db",
				"client_id":  "client-7",
				"status":     "creating",
				"is_active":  true,
				"created_at": "2025-06-01T12:00:00Z",
				"updated_at": "2025-06-01T12:00:00Z",
			},
		})
	}))

	db, err := client.CreateDatabase(context.Background(), "my-db")
	require.NoError(t, err)
	assert.Equal(t, int64(42), db.ID)
	assert.Equal(t, "my-db", db.Name)
	assert.Equal(t, "client-7", db.ClientID)
	assert.Equal(t, "creating", db.Status)
	assert.True(t, db.IsActive)
	assert.Equal(t, "2025-06-01T12:00:00Z", db.CreatedAt)
	assert.Equal(t, "2025-06-01T12:00:00Z", db.UpdatedAt)
}

func TestCreateDatabaseDuplicate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"detail": "database name already in use"})
	}))

	_, err := client.CreateDatabase(context.Background(), "my-db")
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "database name already in use", apiErr.Message)
	assert.Equal(t, "post database", apiErr.Operation)
}

func TestGetDatabase(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": 42, "name": "my-db", "status": "created"},
		})
	}))

	db, err := client.GetDatabase(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "created", db.Status)
}

func TestListDatabases(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		json.NewEncoder(w).Encode(map[string]any{
			"count": 2,
			"links": map[string]any{"previous": "prev-cursor", "next": ""},
			"results": []map[string]any{
				{"id": 1, "name": "db-a"},
				{"id": 2, "name": "db-b"},
			},
		})
	}))

	page, err := client.ListDatabases(context.Background(), api.ListOptions{Page: 2, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "prev-cursor", page.Links.Previous)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "db-b", page.Results[1].Name)
}

func TestListDatabasesMissingResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))

	_, err := client.ListDatabases(context.Background(), api.ListOptions{})
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "Error unknown", apiErr.Message)
	assert.Equal(t, "get databases", apiErr.Operation)
}

func TestDeleteDatabase(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/databases/42", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{"state": "pending"})
	}))

	require.NoError(t, client.DeleteDatabase(context.Background(), 42))
}

func TestQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/42/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"SELECT id, name FROM users"}, body["statements"])

		json.NewEncoder(w).Encode(map[string]any{
			"state": "executed",
			"data": []map[string]any{
				{
					"results": map[string]any{
						"columns": []string{"id", "name"},
						"rows":    [][]any{{1, "ada"}, {2, "grace"}},
					},
				},
			},
		})
	}))

	results, err := client.Query(context.Background(), 42, []string{"SELECT id, name FROM users"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Results)
	assert.Equal(t, []string{"id", "name"}, results[0].Results.Columns)
	require.Len(t, results[0].Results.Rows, 2)
	assert.Equal(t, "grace", results[0].Results.Rows[1][1])
}

func TestQueryStatementError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Transport-level success with an embedded statement error.
		json.NewEncoder(w).Encode(map[string]any{
			"state": "executed",
			"data": []map[string]any{
				{"error": "syntax error"},
				{"results": map[string]any{"columns": []string{}, "rows": [][]any{}}},
			},
		})
	}))

	_, err := client.Query(context.Background(), 42, []string{"SELEC 1", "SELECT 1"})
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "syntax error", apiErr.Message)
	assert.Equal(t, "post query", apiErr.Operation)
}

func TestQueryMissingData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"detail": "database is not ready"})
	}))

	_, err := client.Query(context.Background(), 42, []string{"SELECT 1"})
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "database is not ready", apiErr.Message)
	assert.Equal(t, "post query", apiErr.Operation)
}

func TestQueryDataNotArray(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"state": "executed",
			"data":  map[string]any{"columns": []string{"id"}},
		})
	}))

	_, err := client.Query(context.Background(), 42, []string{"SELECT 1"})
	require.Error(t, err)

	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "Error unknown", apiErr.Message)
	assert.Equal(t, "post query", apiErr.Operation)
}
