package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantOK  bool
		wantMsg string
	}{
		{"title only", CreateTaskRequest{Title: "Write report"}, true, ""},
		{"valid enums", CreateTaskRequest{Title: "t", Status: "IN_PROGRESS", Priority: "HIGH"}, true, ""},
		{"missing title", CreateTaskRequest{}, false, "Task title is required"},
		{"title too long", CreateTaskRequest{Title: strings.Repeat("t", 256)}, false, "Task title must be less than 255 characters"},
		{"bad status", CreateTaskRequest{Title: "t", Status: "DONE"}, false, "Invalid status. Must be PENDING, IN_PROGRESS, or COMPLETED"},
		{"bad priority", CreateTaskRequest{Title: "t", Priority: "URGENT"}, false, "Invalid priority. Must be LOW, MEDIUM, or HIGH"},
		{"lowercase status rejected", CreateTaskRequest{Title: "t", Status: "pending"}, false, "Invalid status. Must be PENDING, IN_PROGRESS, or COMPLETED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.req.Validate()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestUpdateTaskRequestValidate(t *testing.T) {
	t.Run("empty update is valid", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		ok, _ := req.Validate()
		assert.True(t, ok)
	})

	t.Run("null title rejected", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &req))
		ok, msg := req.Validate()
		assert.False(t, ok)
		assert.Equal(t, "Task title is required", msg)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"   "}`), &req))
		ok, _ := req.Validate()
		assert.False(t, ok)
	})

	t.Run("null description allowed", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &req))
		ok, _ := req.Validate()
		assert.True(t, ok)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"status":"DONE"}`), &req))
		ok, msg := req.Validate()
		assert.False(t, ok)
		assert.Equal(t, "Invalid status. Must be PENDING, IN_PROGRESS, or COMPLETED", msg)
	})
}

func TestTaskListQueryDefaults(t *testing.T) {
	q := &TaskListQuery{}
	q.SetDefaults()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)

	q = &TaskListQuery{Page: 3, Limit: 25}
	q.SetDefaults()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
}
