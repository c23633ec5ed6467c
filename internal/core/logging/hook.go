package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts profile_id from context and adds it to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if profileID := GetProfileID(ctx); profileID != "" {
		e.Str("profile_id", profileID)
	}
}
