package eventbus_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/eventbus/testbus"
	"github.com/fieldworks/sitecmd/internal/core/item"
)

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)

	// Register with a nop logger to verify no panic.
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.Nop())

	// Publish a few events to exercise all subscriber paths.
	tb.PublishItemCreated(eventbus.ItemCreatedPayload{
		Item: &item.Item{ID: "test", Title: "test"},
	})
	tb.PublishItemDeferred(eventbus.ItemDeferredPayload{
		Item:       &item.Item{ID: "test"},
		DeferUntil: "2026-09-10",
	})
	tb.PublishItemCarriedForward(eventbus.ItemCarriedForwardPayload{
		TargetDate: "2026-09-01",
		Affected:   2,
	})

	// Wait for last event to confirm all dispatched without panic.
	tb.AssertPublished(t, eventbus.EventItemCarriedForward)
}
