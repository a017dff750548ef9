package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFrom(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		fields    []string
		operation string
		expected  string
	}{
		{
			name:      "detail field",
			body:      `{"detail":"bucket already exists"}`,
			operation: "post bucket",
			expected:  "bucket already exists",
		},
		{
			name:      "last present field wins",
			body:      `{"error":"generic failure","detail":"invalid name"}`,
			operation: "post bucket",
			expected:  "invalid name",
		},
		{
			name:      "earlier field used when later absent",
			body:      `{"error":"generic failure"}`,
			operation: "post bucket",
			expected:  "generic failure",
		},
		{
			name:      "array joined with comma space",
			body:      `{"detail":["name is required","name too long"]}`,
			operation: "post database",
			expected:  "name is required, name too long",
		},
		{
			name:      "empty array ignored",
			body:      `{"error":"boom","detail":[]}`,
			operation: "post database",
			expected:  "boom",
		},
		{
			name:      "unknown shape falls back",
			body:      `{"unexpected":"payload"}`,
			operation: "get databases",
			expected:  "Error unknown",
		},
		{
			name:      "non-json body falls back",
			body:      `<html>Bad Gateway</html>`,
			operation: "get buckets",
			expected:  "Error unknown",
		},
		{
			name:      "custom candidate fields",
			body:      `{"message":"nope","detail":"ignored"}`,
			fields:    []string{"message"},
			operation: "post query",
			expected:  "nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ErrorFrom([]byte(tt.body), tt.operation, tt.fields...)
			require.NotNil(t, err)
			assert.Equal(t, tt.expected, err.Message)
			assert.Equal(t, tt.operation, err.Operation)
		})
	}
}

func TestErrorError(t *testing.T) {
	err := &Error{Message: "database not found", Operation: "get database"}
	assert.Equal(t, "get database: database not found", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		err := Wrap(errors.New("connection refused"), "get buckets")
		assert.Equal(t, "connection refused", err.Message)
		assert.Equal(t, "get buckets", err.Operation)
	})

	t.Run("existing api error passes through", func(t *testing.T) {
		orig := &Error{Message: "syntax error", Operation: "post query"}
		err := Wrap(orig, "other op")
		assert.Same(t, orig, err)
	})
}
