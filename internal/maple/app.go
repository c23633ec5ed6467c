// Package maple wires the profile store, event bus, and configuration into
// the services used by commands and the TUI.
package maple

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/maple/internal/core/config"
	"github.com/colonyops/maple/internal/core/eventbus"
	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/data/db"
)

// App is the central entry point for all maple operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Profiles *ProfileService
	Store    profile.Store

	Bus    *eventbus.EventBus
	Config *config.Config
	DB     *db.DB
}

// NewApp constructs an App from explicit dependencies. bus may be nil.
func NewApp(cfg *config.Config, database *db.DB, store profile.Store, bus *eventbus.EventBus, log zerolog.Logger) *App {
	return &App{
		Profiles: NewProfileService(store, bus, log),
		Store:    store,
		Bus:      bus,
		Config:   cfg,
		DB:       database,
	}
}
