//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body after it has been rendered to JSON.
type Mutation func(m map[string]any)

// DtoMap renders v the way a client would post it and applies muts in order.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))

	for _, mutate := range muts {
		mutate(body)
	}
	return body
}

// Field sets key to value. A nil value drops the key so required-field
// validation can be exercised.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
