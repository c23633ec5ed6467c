// Package stores implements persistence ports on top of SQLite.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/data/db"
)

const (
	busyRetries = 3
	busyWait    = 50 * time.Millisecond
)

// ProfileStore implements profile.Store using SQLite.
type ProfileStore struct {
	db  *db.DB
	now func() time.Time
}

var _ profile.Store = (*ProfileStore)(nil)

// NewProfileStore creates a new SQLite-backed profile store.
func NewProfileStore(db *db.DB) *ProfileStore {
	return &ProfileStore{db: db, now: time.Now}
}

// Get returns a profile by id.
func (s *ProfileStore) Get(ctx context.Context, id string) (profile.Profile, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, display_name, private, created_at, updated_at FROM profiles WHERE id = ?`, id)

	p, err := scanProfile(row)
	if IsNotFoundError(err) {
		return profile.Profile{}, fmt.Errorf("get profile %q: %w", id, profile.ErrNotFound)
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile %q: %w", id, err)
	}
	return p, nil
}

// List returns all profiles, oldest first.
func (s *ProfileStore) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, display_name, private, created_at, updated_at FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a profile. Zero timestamps are set to now.
func (s *ProfileStore) Create(ctx context.Context, p profile.Profile) error {
	p, err := s.prepare(p)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	err = s.withBusyRetry(ctx, func() error {
		return insertProfile(ctx, s.db.Conn(), p)
	})
	if err != nil {
		return fmt.Errorf("create profile %q: %w", p.ID, err)
	}
	return nil
}

// CreateMany inserts profiles in a single transaction. If any insert fails
// nothing is stored.
func (s *ProfileStore) CreateMany(ctx context.Context, ps []profile.Profile) error {
	prepared := make([]profile.Profile, 0, len(ps))
	for i, p := range ps {
		p, err := s.prepare(p)
		if err != nil {
			return fmt.Errorf("create profile %d: %w", i, err)
		}
		prepared = append(prepared, p)
	}

	return s.withBusyRetry(ctx, func() error {
		return s.db.WithTx(ctx, func(tx *sql.Tx) error {
			for _, p := range prepared {
				if err := insertProfile(ctx, tx, p); err != nil {
					return fmt.Errorf("create profile %q: %w", p.ID, err)
				}
			}
			return nil
		})
	})
}

// prepare validates p and fills zero timestamps.
func (s *ProfileStore) prepare(p profile.Profile) (profile.Profile, error) {
	if _, err := profile.ParsePrivacy(string(p.Private)); err != nil {
		return p, err
	}

	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return p, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertProfile(ctx context.Context, ex execer, p profile.Profile) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO profiles (id, display_name, private, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.DisplayName, string(p.Private), p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano())
	if IsConstraintError(err) {
		return fmt.Errorf("%w: %w", profile.ErrExists, err)
	}
	return err
}

// UpdatePrivacy sets the privacy flag for a profile.
func (s *ProfileStore) UpdatePrivacy(ctx context.Context, id string, v profile.Privacy) error {
	if _, err := profile.ParsePrivacy(string(v)); err != nil {
		return err
	}

	var affected int64
	err := s.withBusyRetry(ctx, func() error {
		res, err := s.db.Conn().ExecContext(ctx,
			`UPDATE profiles SET private = ?, updated_at = ? WHERE id = ?`,
			string(v), s.now().UnixNano(), id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("update privacy for %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update privacy for %q: %w", id, profile.ErrNotFound)
	}
	return nil
}

// withBusyRetry retries fn while SQLite reports the database is busy.
func (s *ProfileStore) withBusyRetry(ctx context.Context, fn func() error) error {
	wait := busyWait
	var err error
	for i := 0; i < busyRetries; i++ {
		if err = fn(); err == nil || !IsBusyError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (profile.Profile, error) {
	var (
		p                    profile.Profile
		private              string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.DisplayName, &private, &createdAt, &updatedAt); err != nil {
		return profile.Profile{}, err
	}

	v, err := profile.ParsePrivacy(private)
	if err != nil {
		return profile.Profile{}, err
	}
	p.Private = v
	p.CreatedAt = time.Unix(0, createdAt)
	p.UpdatedAt = time.Unix(0, updatedAt)
	return p, nil
}
