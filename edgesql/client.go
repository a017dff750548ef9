package edgesql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edgectl/edgectl/api"
)

// Client wraps the edge database endpoints.
type Client struct {
	api    *api.Client
	logger zerolog.Logger
}

// NewClient creates an edge SQL client on top of a shared API client.
func NewClient(apiClient *api.Client, logger zerolog.Logger) *Client {
	return &Client{api: apiClient, logger: logger}
}

// CreateDatabase provisions a database. Creation success is reported via
// the state flag rather than a data object.
func (c *Client) CreateDatabase(ctx context.Context, name string) (*Database, error) {
	const op = "post database"

	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	resp, err := c.api.Do(ctx, http.MethodPost, "/databases", nil, bytes.NewReader(payload), api.ContentTypeJSON)
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var env databaseEnvelope
	if err := api.Decode(resp, op, api.HasState, &env); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int64("id", env.Data.ID).
		Str("name", env.Data.Name).
		Str("state", env.State).
		Msg("Created database")
	return &env.Data, nil
}

// GetDatabase retrieves a database by id.
func (c *Client) GetDatabase(ctx context.Context, id int64) (*Database, error) {
	const op = "get database"

	resp, err := c.api.Do(ctx, http.MethodGet, databasePath(id), nil, nil, "")
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var env databaseEnvelope
	if err := api.Decode(resp, op, api.HasData, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ListDatabases retrieves one page of databases.
func (c *Client) ListDatabases(ctx context.Context, opts api.ListOptions) (*DatabasePage, error) {
	const op = "get databases"

	resp, err := c.api.Do(ctx, http.MethodGet, "/databases", opts.Values(), nil, "")
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var page DatabasePage
	if err := api.Decode(resp, op, api.HasResults, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteDatabase removes a database by id.
func (c *Client) DeleteDatabase(ctx context.Context, id int64) error {
	const op = "delete database"

	resp, err := c.api.Do(ctx, http.MethodDelete, databasePath(id), nil, nil, "")
	if err != nil {
		return api.Wrap(err, op)
	}
	if !resp.OK() {
		return api.ErrorFrom(resp.Body, op)
	}

	c.logger.Debug().Int64("id", id).Msg("Deleted database")
	return nil
}

// Query submits a statement batch to a database. The call succeeds when
// the response data is an array whose first element carries no embedded
// error; a first-statement error is surfaced as a top-level error even
// though the transport round trip succeeded.
func (c *Client) Query(ctx context.Context, id int64, statements []string) ([]StatementResult, error) {
	const op = "post query"

	payload, err := json.Marshal(map[string][]string{"statements": statements})
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	resp, err := c.api.Do(ctx, http.MethodPost, databasePath(id)+"/query", nil, bytes.NewReader(payload), api.ContentTypeJSON)
	if err != nil {
		return nil, api.Wrap(err, op)
	}

	var env queryEnvelope
	if err := api.Decode(resp, op, hasResultArray, &env); err != nil {
		return nil, err
	}

	if len(env.Data) > 0 && env.Data[0].Error != "" {
		return nil, &api.Error{Message: env.Data[0].Error, Operation: op}
	}

	c.logger.Debug().
		Int64("id", id).
		Int("statements", len(statements)).
		Int("results", len(env.Data)).
		Msg("Executed query batch")
	return env.Data, nil
}

// hasResultArray accepts query responses whose data field is a JSON array.
// Any other data shape is fed through the error mapper rather than the
// result decoder.
func hasResultArray(payload map[string]json.RawMessage) bool {
	raw := bytes.TrimSpace(payload["data"])
	return len(raw) > 0 && raw[0] == '['
}

func databasePath(id int64) string {
	return fmt.Sprintf("/databases/%d", id)
}
