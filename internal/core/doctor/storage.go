package doctor

import (
	"context"
	"fmt"
)

// Database is the part of the database the storage check inspects.
type Database interface {
	Ping(ctx context.Context) error
	PendingMigrations(ctx context.Context) (int, error)
}

// StorageCheck verifies the database is reachable and fully migrated.
type StorageCheck struct {
	db   Database
	path string
}

// NewStorageCheck creates a new storage check. path is only displayed.
func NewStorageCheck(db Database, path string) *StorageCheck {
	return &StorageCheck{db: db, path: path}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if err := c.db.Ping(ctx); err != nil {
		result.Items = append(result.Items, fail("database", err.Error()))
		return result
	}
	result.Items = append(result.Items, pass("database", c.path))

	pending, err := c.db.PendingMigrations(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, fail("migrations", err.Error()))
	case pending > 0:
		result.Items = append(result.Items, fail("migrations", fmt.Sprintf("%d pending", pending)))
	default:
		result.Items = append(result.Items, pass("migrations", "up to date"))
	}

	return result
}
