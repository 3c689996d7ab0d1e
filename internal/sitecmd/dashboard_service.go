package sitecmd

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/dashboard"
	"github.com/fieldworks/sitecmd/internal/core/item"
)

// DashboardService assembles the command center board and its summary
// metrics. Reads degrade rather than fail: a broken feed yields an
// empty board and each metric falls back to zero independently, so a
// partial database never blanks the whole screen.
type DashboardService struct {
	feed      dashboard.Feed
	items     item.Store
	bucketCap int
	log       zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(feed dashboard.Feed, items item.Store, bucketCap int, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		feed:      feed,
		items:     items,
		bucketCap: bucketCap,
		log:       log.With().Str("component", "dashboard-service").Logger(),
	}
}

// CommandCenter returns the bucketed board for today.
func (s *DashboardService) CommandCenter(ctx context.Context) dashboard.Board {
	return s.CommandCenterFor(ctx, item.Today())
}

// CommandCenterFor returns the bucketed board relative to the given
// YYYY-MM-DD date.
func (s *DashboardService) CommandCenterFor(ctx context.Context, today string) dashboard.Board {
	rows, err := s.feed.ListOpenRows(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("open item feed failed, rendering empty board")
		return dashboard.Build(nil, today, s.bucketCap)
	}
	return dashboard.Build(rows, today, s.bucketCap)
}

// OverdueCountFor returns how many unresolved items are overdue
// relative to the given YYYY-MM-DD date.
func (s *DashboardService) OverdueCountFor(ctx context.Context, today string) int64 {
	n, err := s.items.CountOverdue(ctx, today)
	if err != nil {
		s.log.Error().Err(err).Msg("count overdue failed")
		return 0
	}
	return n
}

// Metrics returns the summary counters for the command center header.
func (s *DashboardService) Metrics(ctx context.Context) dashboard.Metrics {
	today := item.Today()
	var m dashboard.Metrics

	if n, err := s.items.CountOpen(ctx); err != nil {
		s.log.Error().Err(err).Msg("count open failed")
	} else {
		m.OpenTotal = n
	}
	if n, err := s.items.CountOverdue(ctx, today); err != nil {
		s.log.Error().Err(err).Msg("count overdue failed")
	} else {
		m.OverdueTotal = n
	}
	if n, err := s.items.CountDeferred(ctx, today); err != nil {
		s.log.Error().Err(err).Msg("count deferred failed")
	} else {
		m.DeferredTotal = n
	}
	if n, err := s.items.CountCompletedSince(ctx, time.Now().AddDate(0, 0, -7)); err != nil {
		s.log.Error().Err(err).Msg("count completed failed")
	} else {
		m.CompletedLast7Days = n
	}
	return m
}
