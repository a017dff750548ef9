package edgesql

import "github.com/edgectl/edgectl/api"

// Database describes a SQL-like edge data store. Platform field names are
// snake_case on the wire and normalized to Go names here with no field
// loss.
type Database struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ClientID  string `json:"client_id"`
	Status    string `json:"status"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	DeletedAt string `json:"deleted_at,omitempty"`
}

// DatabasePage is one page of a database listing.
type DatabasePage struct {
	Links   api.Links  `json:"links"`
	Count   int        `json:"count"`
	Results []Database `json:"results"`
}

// ResultSet holds the columns and rows produced by one statement.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// StatementResult is the outcome of a single statement in a query batch.
// Exactly one of Error and Results is meaningful.
type StatementResult struct {
	Error   string     `json:"error,omitempty"`
	Results *ResultSet `json:"results,omitempty"`
}

// databaseEnvelope wraps single-database responses.
type databaseEnvelope struct {
	State string   `json:"state"`
	Data  Database `json:"data"`
}

// queryEnvelope wraps query execution responses.
type queryEnvelope struct {
	State string            `json:"state"`
	Data  []StatementResult `json:"data"`
}
