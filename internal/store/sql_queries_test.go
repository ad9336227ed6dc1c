package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGetValueQuery(t *testing.T) {
	query, args, err := buildGetValueQuery(TokenKey)

	require.NoError(t, err)
	assert.Equal(t, "SELECT value FROM session_kv WHERE key = ?", query)
	assert.Equal(t, []any{TokenKey}, args)
}

func TestBuildSetValueQuery(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	query, args, err := buildSetValueQuery(UserKey, `{"id":1}`, now)

	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO session_kv")
	assert.Contains(t, query, "VALUES (?,?,?)")
	assert.Contains(t, query, "ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	assert.Equal(t, []any{UserKey, `{"id":1}`, now}, args)
}

func TestBuildRemoveValueQuery(t *testing.T) {
	query, args, err := buildRemoveValueQuery(TokenKey)

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM session_kv WHERE key = ?", query)
	assert.Equal(t, []any{TokenKey}, args)
}
