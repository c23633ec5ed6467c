package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	profiles  map[string]Profile
	updateErr error
	updates   []Privacy
}

func (s *stubStore) Get(_ context.Context, id string) (Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *stubStore) List(_ context.Context) ([]Profile, error) {
	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubStore) Create(_ context.Context, p Profile) error {
	s.profiles[p.ID] = p
	return nil
}

func (s *stubStore) CreateMany(_ context.Context, ps []Profile) error {
	for _, p := range ps {
		s.profiles[p.ID] = p
	}
	return nil
}

func (s *stubStore) UpdatePrivacy(_ context.Context, id string, v Privacy) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	p := s.profiles[id]
	p.Private = v
	s.profiles[id] = p
	s.updates = append(s.updates, v)
	return nil
}

type recordingPublisher struct {
	ids    []string
	values []Privacy
}

func (r *recordingPublisher) PublishPrivacyUpdated(id string, v Privacy) {
	r.ids = append(r.ids, id)
	r.values = append(r.values, v)
}

func TestActions_UpdateIsPrivate(t *testing.T) {
	t.Run("persists and publishes", func(t *testing.T) {
		store := &stubStore{profiles: map[string]Profile{"p1": {ID: "p1"}}}
		pub := &recordingPublisher{}
		a := NewActions(store, "p1", pub, zerolog.Nop())

		require.NoError(t, a.UpdateIsPrivate(context.Background(), PrivacyPrivate))

		got, err := a.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, PrivacyPrivate, got.Private)
		assert.Equal(t, []string{"p1"}, pub.ids)
		assert.Equal(t, []Privacy{PrivacyPrivate}, pub.values)
	})

	t.Run("store failure is wrapped and not published", func(t *testing.T) {
		boom := errors.New("boom")
		store := &stubStore{profiles: map[string]Profile{"p1": {ID: "p1"}}, updateErr: boom}
		pub := &recordingPublisher{}
		a := NewActions(store, "p1", pub, zerolog.Nop())

		err := a.UpdateIsPrivate(context.Background(), PrivacyPrivate)
		require.ErrorIs(t, err, boom)
		assert.Empty(t, pub.ids)
	})

	t.Run("rejects invalid flag", func(t *testing.T) {
		store := &stubStore{profiles: map[string]Profile{"p1": {ID: "p1"}}}
		a := NewActions(store, "p1", nil, zerolog.Nop())

		err := a.UpdateIsPrivate(context.Background(), Privacy("maybe"))
		require.Error(t, err)
		assert.Empty(t, store.updates)
	})

	t.Run("nil publisher", func(t *testing.T) {
		store := &stubStore{profiles: map[string]Profile{"p1": {ID: "p1"}}}
		a := NewActions(store, "p1", nil, zerolog.Nop())

		require.NoError(t, a.UpdateIsPrivate(context.Background(), PrivacyPublic))
		assert.Equal(t, "p1", a.ProfileID())
	})
}

func TestPrivacyUpdaterFunc(t *testing.T) {
	var got Privacy
	var u PrivacyUpdater = PrivacyUpdaterFunc(func(_ context.Context, v Privacy) error {
		got = v
		return nil
	})

	require.NoError(t, u.UpdateIsPrivate(context.Background(), PrivacyPrivate))
	assert.Equal(t, PrivacyPrivate, got)
}
