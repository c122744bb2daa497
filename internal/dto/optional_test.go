package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	type payload struct {
		Description Optional[string] `json:"description"`
	}

	t.Run("absent key", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Description.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &p))
		assert.True(t, p.Description.Set)
		assert.False(t, p.Description.Valid)
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"description":"notes"}`), &p))
		assert.True(t, p.Description.Set)
		assert.True(t, p.Description.Valid)
		assert.Equal(t, "notes", p.Description.Value)
	})

	t.Run("type mismatch", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"description":42}`), &p))
	})
}
