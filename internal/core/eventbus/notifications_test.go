package eventbus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/eventbus/testbus"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/notify"
)

func latestNotificationPayload(tb *testbus.Bus, t *testing.T) eventbus.NotificationPublishedPayload {
	t.Helper()
	tb.AssertPublished(t, eventbus.EventNotificationPublished)

	var payload eventbus.NotificationPublishedPayload
	for _, e := range tb.Events() {
		if e.Event != eventbus.EventNotificationPublished {
			continue
		}
		p, ok := e.Payload.(eventbus.NotificationPublishedPayload)
		require.True(t, ok)
		payload = p
	}

	return payload
}

func TestNotificationRouter_CarryForward(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishItemCarriedForward(eventbus.ItemCarriedForwardPayload{
		TargetDate: "2026-09-01",
		Affected:   3,
	})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, notify.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "3 items")
	assert.Contains(t, p.Message, "2026-09-01")
	assert.Contains(t, p.Message, "all projects")
}

func TestNotificationRouter_CarryForwardSingular(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishItemCarriedForward(eventbus.ItemCarriedForwardPayload{
		ProjectID:  "p1",
		TargetDate: "2026-09-01",
		Affected:   1,
	})
	p := latestNotificationPayload(tb, t)

	assert.Contains(t, p.Message, "1 item moved")
	assert.Contains(t, p.Message, "project p1")
}

func TestNotificationRouter_BlockedItem(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishItemTransitioned(eventbus.ItemTransitionedPayload{
		Item:      &item.Item{Title: "Order rebar"},
		OldStatus: item.StatusOpen,
		NewStatus: item.StatusBlocked,
	})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, notify.LevelWarning, p.Level)
	assert.Contains(t, p.Message, "Order rebar")
}

func TestNotificationRouter_NonBlockingTransitionIsSilent(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishItemTransitioned(eventbus.ItemTransitionedPayload{
		Item:      &item.Item{Title: "Order rebar"},
		OldStatus: item.StatusOpen,
		NewStatus: item.StatusDone,
	})

	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 50*time.Millisecond)
}

func TestNotificationRouter_NilItemDoesNotPanic(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishItemTransitioned(eventbus.ItemTransitionedPayload{
		NewStatus: item.StatusBlocked,
	})

	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 50*time.Millisecond)
}
