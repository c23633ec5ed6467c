package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpen_AppliesMigrations(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	migrations, err := loadMigrations()
	require.NoError(t, err)

	applied, err := appliedVersions(ctx, database.Conn())
	require.NoError(t, err)
	for _, m := range migrations {
		assert.True(t, applied[m.Version], "migration %d applied", m.Version)
	}

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM profiles LIMIT 0")
	require.NoError(t, err, "profiles table should exist")
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database := openTestDB(t)
	err := migrateUp(context.Background(), database.Conn(), database.log)
	assert.NoError(t, err)
}

func TestMigrateDown(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, MigrateDown(ctx, database.Conn(), 1))

	_, err := database.Conn().ExecContext(ctx, "SELECT 1 FROM profiles LIMIT 0")
	assert.Error(t, err, "profiles table should be dropped")

	assert.Error(t, MigrateDown(ctx, database.Conn(), 1), "nothing left to revert")
	assert.Error(t, MigrateDown(ctx, database.Conn(), 0))
}

func TestPrivacyCheckConstraint(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.Conn().ExecContext(ctx,
		"INSERT INTO profiles (id, display_name, private, created_at, updated_at) VALUES ('a', 'A', 'maybe', 0, 0)")
	assert.Error(t, err, "only '' and 'yes' are allowed")
}

func TestWithTx_RollsBack(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	err := database.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO profiles (id, display_name, created_at, updated_at) VALUES ('a', 'A', 0, 0)")
		require.NoError(t, err)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count))
	assert.Zero(t, count)
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		in        string
		version   int
		name      string
		direction string
		wantErr   bool
	}{
		{"0001_profiles.up.sql", 1, "profiles", "up", false},
		{"0012_add_index.down.sql", 12, "add_index", "down", false},
		{"0001_profiles.sql", 0, "", "", true},
		{"abcd_profiles.up.sql", 0, "", "", true},
		{"0000_zero.up.sql", 0, "", "", true},
		{"0001_.up.sql", 0, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, name, dir, err := parseFilename(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, v)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.direction, dir)
		})
	}
}
