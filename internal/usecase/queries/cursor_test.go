//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"rentcar-backend/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 30, 15, 123456789, time.UTC)

	cursor := queries.EncodeAfterCursor(at, 42)
	gotAt, gotID, err := queries.DecodeAfterCursor(cursor)

	require.NoError(t, err)
	assert.Equal(t, int64(42), gotID)
	assert.True(t, at.Truncate(time.Microsecond).Equal(gotAt))
}

func TestDecodeAfterCursorRejects(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "%%%"},
		{name: "unknown version", cursor: enc("v2:1-1")},
		{name: "missing id", cursor: enc("v1:1717232400000000")},
		{name: "bad timestamp", cursor: enc("v1:yesterday-1")},
		{name: "bad id", cursor: enc("v1:1717232400000000-abc")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, queries.ValidateLimit(0))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
