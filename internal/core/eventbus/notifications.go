package eventbus

import (
	"fmt"

	"github.com/fieldworks/sitecmd/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeItemCarriedForward(func(p ItemCarriedForwardPayload) {
		scope := "all projects"
		if p.ProjectID != "" {
			scope = "project " + p.ProjectID
		}
		plural := "s"
		if p.Affected == 1 {
			plural = ""
		}
		r.notifyf(notify.LevelInfo, "carry forward complete: %d item%s moved to %s (%s)",
			p.Affected, plural, p.TargetDate, scope)
	})

	r.bus.SubscribeItemTransitioned(func(p ItemTransitionedPayload) {
		if p.Item == nil {
			return
		}
		if p.NewStatus == "blocked" {
			r.notifyf(notify.LevelWarning, "item %q is blocked", p.Item.Title)
		}
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
