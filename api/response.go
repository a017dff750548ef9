package api

import (
	"encoding/json"
)

// Predicate decides whether a decoded payload represents success for a
// given endpoint. Success detection differs per endpoint (some carry a
// data object, list endpoints a results array, database creation a state
// flag), so each call site names its predicate explicitly instead of
// duplicating inline checks.
type Predicate func(payload map[string]json.RawMessage) bool

// HasField returns a predicate satisfied when the named field is present
// and not JSON null.
func HasField(name string) Predicate {
	return func(payload map[string]json.RawMessage) bool {
		raw, ok := payload[name]
		return ok && string(raw) != "null"
	}
}

// Predicates for the response shapes the platform uses.
var (
	// HasData matches single-entity create/update/get responses.
	HasData = HasField("data")
	// HasResults matches list responses.
	HasResults = HasField("results")
	// HasState matches responses that only carry an execution state flag.
	HasState = HasField("state")
)

// Links carries pagination cursors on list responses.
type Links struct {
	Previous string `json:"previous"`
	Next     string `json:"next"`
}

// Decode normalizes a response body. When pred rejects the payload (or the
// transport status indicated failure) the body is fed through the error
// mapper and an *Error tagged with operation is returned; otherwise the
// body is unmarshaled into out. out may be nil when only success detection
// is wanted.
func Decode(resp *Response, operation string, pred Predicate, out any) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		if !resp.OK() {
			return ErrorFrom(resp.Body, operation)
		}
		return Wrap(err, operation)
	}

	if !resp.OK() || (pred != nil && !pred(payload)) {
		return ErrorFrom(resp.Body, operation)
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return Wrap(err, operation)
		}
	}

	return nil
}
