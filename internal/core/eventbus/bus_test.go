package eventbus_test

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/maple/internal/core/eventbus"
	"github.com/colonyops/maple/internal/core/eventbus/testbus"
	"github.com/colonyops/maple/internal/core/profile"
)

func TestBus_DeliversTypedPayload(t *testing.T) {
	bus := testbus.New(t)

	bus.PublishPrivacyUpdated(eventbus.PrivacyUpdatedPayload{ProfileID: "p1", Private: profile.PrivacyPrivate})
	bus.AssertPublished(t, eventbus.EventPrivacyUpdated)

	events := bus.Events()
	require.Len(t, events, 1)
	payload, ok := events[0].Payload.(eventbus.PrivacyUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, "p1", payload.ProfileID)
	assert.Equal(t, profile.PrivacyPrivate, payload.Private)
}

func TestBus_ProfilePublisher(t *testing.T) {
	bus := testbus.New(t)

	bus.ProfilePublisher().PublishPrivacyUpdated("p2", profile.PrivacyPublic)
	bus.AssertPublished(t, eventbus.EventPrivacyUpdated)
	bus.AssertNotPublished(t, eventbus.EventSettingsClosed, 20*time.Millisecond)
}

func TestBus_DropsWhenFull(t *testing.T) {
	bus := eventbus.New(1)

	var dropped atomic.Int32
	bus.OnDrop(func(eventbus.Event, any) { dropped.Add(1) })

	// not started, so the second publish cannot be enqueued
	bus.PublishSettingsOpened(eventbus.SettingsOpenedPayload{ProfileID: "p1"})
	bus.PublishSettingsOpened(eventbus.SettingsOpenedPayload{ProfileID: "p1"})

	assert.Equal(t, int32(1), dropped.Load())
}

func TestBus_RecoversSubscriberPanic(t *testing.T) {
	bus := eventbus.New(8)

	panicked := make(chan struct{}, 1)
	delivered := make(chan struct{}, 1)
	bus.OnPanic(func(eventbus.Event, any, any) { panicked <- struct{}{} })
	bus.SubscribeSettingsClosed(func(eventbus.SettingsClosedPayload) { panic("boom") })
	bus.SubscribeSettingsClosed(func(eventbus.SettingsClosedPayload) { delivered <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go bus.Start(ctx)

	bus.PublishSettingsClosed(eventbus.SettingsClosedPayload{ProfileID: "p1"})

	select {
	case <-panicked:
	case <-time.After(time.Second):
		t.Fatal("panic hook not called")
	}
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second subscriber not called")
	}
}

func TestRegisterDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	bus := eventbus.New(1)
	eventbus.RegisterDebugLogger(bus, zerolog.New(&buf).Level(zerolog.DebugLevel))

	bus.PublishSettingsOpened(eventbus.SettingsOpenedPayload{})
	bus.PublishSettingsOpened(eventbus.SettingsOpenedPayload{})

	out := buf.String()
	assert.Contains(t, out, "event fired")
	assert.Contains(t, out, "event dropped: buffer full")
}
