package dashboard

import "context"

// Feed supplies the open-item rows the board is built from. The store
// layer implements it with a single pre-joined query across all
// categories.
type Feed interface {
	ListOpenRows(ctx context.Context) ([]Row, error)
}

// Metrics are the summary counters shown in the command center header.
// Every field degrades independently to zero when its query fails.
type Metrics struct {
	OpenTotal          int64 `json:"open_total"`
	OverdueTotal       int64 `json:"overdue_total"`
	DeferredTotal      int64 `json:"deferred_total"`
	CompletedLast7Days int64 `json:"completed_last_7_days"`
}
