package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

func TestDocumentStore_UpsertAndFind(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "a", Text: "first"}))
	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "b", Text: "second"}))

	docs, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestDocumentStore_UpsertReplaces(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "a", Text: "old"}))
	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "a", Text: "new"}))

	docs, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "new", docs[0].Text)
}

func TestDocumentStore_OwnerScoping(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "shared", Text: "shared"}))
	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "mine", OwnerID: "user-1", Text: "mine"}))
	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "theirs", OwnerID: "user-2", Text: "theirs"}))

	shared, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "shared", shared[0].ID)

	mine, err := store.FindByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].ID)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ownerCount, err := store.CountByOwner(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, ownerCount)
}

func TestDocumentStore_DeleteByID(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "a"}))

	removed, err := store.DeleteByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.DeleteByID(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDocumentStore_DeleteAllKeepsPersonal(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "shared"}))
	require.NoError(t, store.Upsert(ctx, &domain.Document{ID: "mine", OwnerID: "user-1"}))

	require.NoError(t, store.DeleteAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	mine, err := store.FindByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
