package eventbus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/item"
)

func TestEventBus_StopDeliversBufferedEvents(t *testing.T) {
	bus := eventbus.New(64)

	// Handlers run on the bus goroutine; Stop returning gives the
	// happens-before edge that makes the plain counter safe to read.
	var delivered int
	bus.SubscribeItemCreated(func(eventbus.ItemCreatedPayload) {
		delivered++
	})

	go bus.Start(context.Background())

	for i := 0; i < 20; i++ {
		bus.PublishItemCreated(eventbus.ItemCreatedPayload{
			Item: &item.Item{ID: "x", Title: "x"},
		})
	}
	bus.Stop()

	assert.Equal(t, 20, delivered, "publishes just before shutdown must all reach subscribers")
}

func TestEventBus_CancelDrainsBeforeExit(t *testing.T) {
	bus := eventbus.New(8)

	var delivered int
	bus.SubscribeItemCarriedForward(func(eventbus.ItemCarriedForwardPayload) {
		delivered++
	})

	ctx, cancel := context.WithCancel(context.Background())
	go bus.Start(ctx)

	bus.PublishItemCarriedForward(eventbus.ItemCarriedForwardPayload{TargetDate: "2026-09-01", Affected: 3})
	cancel()
	bus.Stop()

	assert.Equal(t, 1, delivered)
}
