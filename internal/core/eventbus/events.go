// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within maple.
package eventbus

import (
	"github.com/colonyops/maple/internal/core/profile"
)

// Event names a kind of event on the bus.
type Event string

// Keep list sorted A-Z.
const (
	EventPrivacyUpdated Event = "profile.privacy-updated"
	EventSettingsClosed Event = "settings.closed"
	EventSettingsOpened Event = "settings.opened"
)

// PrivacyUpdatedPayload is emitted after a privacy flag is persisted.
type PrivacyUpdatedPayload struct {
	ProfileID string
	Private   profile.Privacy
}

// SettingsOpenedPayload is emitted when the settings modal is shown.
type SettingsOpenedPayload struct {
	ProfileID string
}

// SettingsClosedPayload is emitted when the settings modal closes.
// Saved is false for cancel and dismiss.
type SettingsClosedPayload struct {
	ProfileID string
	Saved     bool
}

// PublishPrivacyUpdated publishes EventPrivacyUpdated.
func (bus *EventBus) PublishPrivacyUpdated(p PrivacyUpdatedPayload) {
	bus.send(EventPrivacyUpdated, p)
}

// SubscribePrivacyUpdated registers fn for EventPrivacyUpdated.
func (bus *EventBus) SubscribePrivacyUpdated(fn func(PrivacyUpdatedPayload)) {
	subscribe(bus, EventPrivacyUpdated, fn)
}

// PublishSettingsOpened publishes EventSettingsOpened.
func (bus *EventBus) PublishSettingsOpened(p SettingsOpenedPayload) {
	bus.send(EventSettingsOpened, p)
}

// SubscribeSettingsOpened registers fn for EventSettingsOpened.
func (bus *EventBus) SubscribeSettingsOpened(fn func(SettingsOpenedPayload)) {
	subscribe(bus, EventSettingsOpened, fn)
}

// PublishSettingsClosed publishes EventSettingsClosed.
func (bus *EventBus) PublishSettingsClosed(p SettingsClosedPayload) {
	bus.send(EventSettingsClosed, p)
}

// SubscribeSettingsClosed registers fn for EventSettingsClosed.
func (bus *EventBus) SubscribeSettingsClosed(fn func(SettingsClosedPayload)) {
	subscribe(bus, EventSettingsClosed, fn)
}

type privacyPublisher struct {
	bus *EventBus
}

// PublishPrivacyUpdated implements profile.PrivacyPublisher.
func (p privacyPublisher) PublishPrivacyUpdated(profileID string, v profile.Privacy) {
	p.bus.PublishPrivacyUpdated(PrivacyUpdatedPayload{ProfileID: profileID, Private: v})
}

// ProfilePublisher adapts the bus to profile.PrivacyPublisher.
func (bus *EventBus) ProfilePublisher() profile.PrivacyPublisher {
	return privacyPublisher{bus: bus}
}
