package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers bus hooks that log all event activity.
// Publishes are logged at debug level, drops at warn and subscriber panics
// at error.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, _ any) {
		logger.Debug().Str("event", string(event)).Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

// RegisterAuditLogger records profile changes at info level.
func RegisterAuditLogger(bus *EventBus, logger zerolog.Logger) {
	bus.SubscribePrivacyUpdated(func(p PrivacyUpdatedPayload) {
		logger.Info().
			Str("profile_id", p.ProfileID).
			Bool("private", p.Private.IsPrivate()).
			Msg("profile privacy changed")
	})
	bus.SubscribeSettingsClosed(func(p SettingsClosedPayload) {
		logger.Debug().
			Str("profile_id", p.ProfileID).
			Bool("saved", p.Saved).
			Msg("settings closed")
	})
}
