package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

func TestDocumentStore_UploadAndGet(t *testing.T) {
	store := NewDocumentStore()

	err := store.Upload(context.Background(), "users", "u1", map[string]any{"name": "Alice"}, false)
	require.NoError(t, err)

	doc, err := store.Get("users", "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Alice"}, doc)
	assert.Equal(t, 1, store.Count("users"))
}

func TestDocumentStore_ReplaceDropsOldFields(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "users", "u1", map[string]any{"name": "Alice", "age": int64(30)}, false))
	require.NoError(t, store.Upload(ctx, "users", "u1", map[string]any{"name": "Bob"}, false))

	doc, err := store.Get("users", "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Bob"}, doc)
}

func TestDocumentStore_MergeKeepsOldFields(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "users", "u1", map[string]any{"name": "Alice", "age": int64(30)}, false))
	require.NoError(t, store.Upload(ctx, "users", "u1", map[string]any{"name": "Bob"}, true))

	doc, err := store.Get("users", "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Bob", "age": int64(30)}, doc)
}

func TestDocumentStore_GetMissing(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.Get("users", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_CollectionsAreIsolated(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "a", "d1", map[string]any{"v": 1}, false))
	require.NoError(t, store.Upload(ctx, "b", "d1", map[string]any{"v": 2}, false))

	assert.Equal(t, 1, store.Count("a"))
	assert.Equal(t, 1, store.Count("b"))
	assert.Zero(t, store.Count("c"))
}
