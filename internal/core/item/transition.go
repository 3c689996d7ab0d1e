package item

import "time"

// CanTransition reports whether an item may move from one status to
// another. Every pair is permitted, including self-transitions; the
// lifecycle is deliberately a total relation rather than a restricted
// graph, and callers should not infer forbidden edges.
func CanTransition(from, to Status) bool {
	return from.IsValid() && to.IsValid()
}

// ApplyTransition applies a status change to the item, setting the
// completion or cancellation timestamp when the target calls for it.
// Timestamps set by earlier transitions are never cleared; moving to
// done a second time refreshes CompletedAt.
func ApplyTransition(it Item, target Status, now time.Time) Item {
	it.Status = target
	it.UpdatedAt = now

	switch target {
	case StatusDone:
		t := now
		it.CompletedAt = &t
	case StatusCancelled:
		t := now
		it.CancelledAt = &t
	}

	return it
}
