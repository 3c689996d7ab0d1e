package eventbus

import (
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/notify"
)

// ItemCreatedPayload is emitted when a new action item is created.
type ItemCreatedPayload struct {
	Item *item.Item
}

// ItemTransitionedPayload is emitted when an item changes status.
type ItemTransitionedPayload struct {
	Item      *item.Item
	OldStatus item.Status
	NewStatus item.Status
}

// ItemDeferredPayload is emitted when an item's defer date is set or
// cleared. DeferUntil is empty on clear.
type ItemDeferredPayload struct {
	Item       *item.Item
	DeferUntil string
}

// ItemCarriedForwardPayload is emitted after a carry-forward bulk
// update. ProjectID is empty for the all-projects variant.
type ItemCarriedForwardPayload struct {
	ProjectID  string
	TargetDate string
	Affected   int64
}

// NotificationPublishedPayload carries a user-facing notice routed
// from a domain event.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

// PublishItemCreated publishes an item.created event.
func (bus *EventBus) PublishItemCreated(p ItemCreatedPayload) {
	bus.send(EventItemCreated, p)
}

// SubscribeItemCreated registers a handler for item.created events.
func (bus *EventBus) SubscribeItemCreated(fn func(ItemCreatedPayload)) {
	bus.subscribe(EventItemCreated, func(v any) {
		if p, ok := v.(ItemCreatedPayload); ok {
			fn(p)
		}
	})
}

// PublishItemTransitioned publishes an item.transitioned event.
func (bus *EventBus) PublishItemTransitioned(p ItemTransitionedPayload) {
	bus.send(EventItemTransitioned, p)
}

// SubscribeItemTransitioned registers a handler for item.transitioned events.
func (bus *EventBus) SubscribeItemTransitioned(fn func(ItemTransitionedPayload)) {
	bus.subscribe(EventItemTransitioned, func(v any) {
		if p, ok := v.(ItemTransitionedPayload); ok {
			fn(p)
		}
	})
}

// PublishItemDeferred publishes an item.deferred event.
func (bus *EventBus) PublishItemDeferred(p ItemDeferredPayload) {
	bus.send(EventItemDeferred, p)
}

// SubscribeItemDeferred registers a handler for item.deferred events.
func (bus *EventBus) SubscribeItemDeferred(fn func(ItemDeferredPayload)) {
	bus.subscribe(EventItemDeferred, func(v any) {
		if p, ok := v.(ItemDeferredPayload); ok {
			fn(p)
		}
	})
}

// PublishItemCarriedForward publishes an item.carried-forward event.
func (bus *EventBus) PublishItemCarriedForward(p ItemCarriedForwardPayload) {
	bus.send(EventItemCarriedForward, p)
}

// SubscribeItemCarriedForward registers a handler for item.carried-forward events.
func (bus *EventBus) SubscribeItemCarriedForward(fn func(ItemCarriedForwardPayload)) {
	bus.subscribe(EventItemCarriedForward, func(v any) {
		if p, ok := v.(ItemCarriedForwardPayload); ok {
			fn(p)
		}
	})
}

// PublishNotificationPublished publishes a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers a handler for notification.published events.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(v any) {
		if p, ok := v.(NotificationPublishedPayload); ok {
			fn(p)
		}
	})
}
