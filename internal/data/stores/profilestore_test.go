package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/data/db"
)

func newTestStore(t *testing.T) *ProfileStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewProfileStore(database)
}

func TestProfileStore_CreateGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, profile.Profile{
		ID:          "p1",
		DisplayName: "Ada",
		CreatedAt:   created,
	}))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Equal(t, profile.PrivacyPublic, got.Private)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(created))
}

func TestProfileStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestProfileStore_CreateDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, profile.Profile{ID: "p1", DisplayName: "Ada"}))
	err := store.Create(ctx, profile.Profile{ID: "p1", DisplayName: "Ada again"})
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrExists)
	assert.True(t, IsConstraintError(err))
}

func TestProfileStore_CreateMany(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateMany(ctx, []profile.Profile{
		{ID: "a", DisplayName: "A"},
		{ID: "b", DisplayName: "B", Private: profile.PrivacyPrivate},
	}))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, profile.PrivacyPrivate, got[1].Private)
}

func TestProfileStore_CreateManyRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, profile.Profile{ID: "taken", DisplayName: "Existing"}))

	err := store.CreateMany(ctx, []profile.Profile{
		{ID: "fresh", DisplayName: "Fresh"},
		{ID: "taken", DisplayName: "Duplicate"},
	})
	require.ErrorIs(t, err, profile.ErrExists)

	_, err = store.Get(ctx, "fresh")
	assert.ErrorIs(t, err, profile.ErrNotFound, "earlier inserts are rolled back")

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProfileStore_CreateManyRejectsInvalidPrivacy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.CreateMany(ctx, []profile.Profile{
		{ID: "a", DisplayName: "A"},
		{ID: "b", DisplayName: "B", Private: "maybe"},
	})
	require.Error(t, err)

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProfileStore_CreateRejectsInvalidPrivacy(t *testing.T) {
	store := newTestStore(t)
	err := store.Create(context.Background(), profile.Profile{ID: "p1", Private: "no"})
	assert.Error(t, err)
}

func TestProfileStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, profile.Profile{ID: "b", DisplayName: "B", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Create(ctx, profile.Profile{ID: "a", DisplayName: "A", CreatedAt: base}))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestProfileStore_UpdatePrivacy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Create(ctx, profile.Profile{ID: "p1", DisplayName: "Ada", CreatedAt: fixed.Add(-time.Hour)}))

	require.NoError(t, store.UpdatePrivacy(ctx, "p1", profile.PrivacyPrivate))
	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, profile.PrivacyPrivate, got.Private)
	assert.True(t, got.UpdatedAt.Equal(fixed))

	require.NoError(t, store.UpdatePrivacy(ctx, "p1", profile.PrivacyPublic))
	got, err = store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, profile.PrivacyPublic, got.Private)
}

func TestProfileStore_UpdatePrivacyErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpdatePrivacy(ctx, "missing", profile.PrivacyPrivate)
	assert.ErrorIs(t, err, profile.ErrNotFound)

	require.NoError(t, store.Create(ctx, profile.Profile{ID: "p1", DisplayName: "Ada"}))
	assert.Error(t, store.UpdatePrivacy(ctx, "p1", profile.Privacy("maybe")))
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(assert.AnError))
	assert.False(t, IsBusyError(assert.AnError))
	assert.False(t, IsConstraintError(assert.AnError))
}
