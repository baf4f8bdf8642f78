package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataSessionStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "admin.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	store := NewMetadataSessionStore(db)

	has, err := store.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.SetSession(ctx, "root@example.com"))
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store = NewMetadataSessionStore(db)

	has, err = store.HasSession(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	email, err := store.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", email)

	require.NoError(t, store.ClearSession(ctx))
	has, err = store.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	email, err = store.Email(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	var s MemorySessionStore

	require.NoError(t, s.SetSession(ctx, "a@b.c"))
	has, _ := s.HasSession(ctx)
	assert.True(t, has)
	email, _ := s.Email(ctx)
	assert.Equal(t, "a@b.c", email)

	require.NoError(t, s.ClearSession(ctx))
	has, _ = s.HasSession(ctx)
	assert.False(t, has)
	email, _ = s.Email(ctx)
	assert.Empty(t, email)
}
