package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}

	assert.False(t, Status("").IsValid())
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("Done").IsValid())
}

func TestStatusResolved(t *testing.T) {
	assert.True(t, StatusDone.Resolved())
	assert.True(t, StatusCancelled.Resolved())

	assert.False(t, StatusOpen.Resolved())
	assert.False(t, StatusInProgress.Resolved())
	assert.False(t, StatusBlocked.Resolved())
}

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityCritical, 0},
		{PriorityHigh, 1},
		{PriorityMedium, 2},
		{PriorityLow, 3},
		{Priority(""), 3},
		{Priority("urgent"), 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.Rank())
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityCritical, NormalizePriority("critical"))
	assert.Equal(t, PriorityLow, NormalizePriority("low"))

	// Empty and unknown inputs default to medium.
	assert.Equal(t, PriorityMedium, NormalizePriority(""))
	assert.Equal(t, PriorityMedium, NormalizePriority("urgent"))
	assert.Equal(t, PriorityMedium, NormalizePriority("HIGH"))
}

func TestItemDeferred(t *testing.T) {
	today := "2024-06-15"

	tests := []struct {
		name       string
		deferUntil string
		want       bool
	}{
		{"no defer date", "", false},
		{"deferred to future", "2024-06-16", true},
		{"deferred to today", "2024-06-15", false},
		{"defer date in the past", "2024-06-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{DeferUntil: tt.deferUntil}
			assert.Equal(t, tt.want, it.Deferred(today))
		})
	}
}

func TestCanTransition(t *testing.T) {
	// Every pair of valid statuses is permitted, including self-moves
	// and reopening resolved items.
	for _, from := range Statuses {
		for _, to := range Statuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(StatusOpen, Status("archived")))
	assert.False(t, CanTransition(Status(""), StatusOpen))
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("done stamps completed_at", func(t *testing.T) {
		got := ApplyTransition(Item{Status: StatusOpen}, StatusDone, now)

		assert.Equal(t, StatusDone, got.Status)
		assert.Equal(t, now, got.UpdatedAt)
		if assert.NotNil(t, got.CompletedAt) {
			assert.Equal(t, now, *got.CompletedAt)
		}
		assert.Nil(t, got.CancelledAt)
	})

	t.Run("cancelled stamps cancelled_at", func(t *testing.T) {
		got := ApplyTransition(Item{Status: StatusBlocked}, StatusCancelled, now)

		assert.Equal(t, StatusCancelled, got.Status)
		if assert.NotNil(t, got.CancelledAt) {
			assert.Equal(t, now, *got.CancelledAt)
		}
		assert.Nil(t, got.CompletedAt)
	})

	t.Run("reopening keeps the completion stamp", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		it := Item{Status: StatusDone, CompletedAt: &earlier}

		got := ApplyTransition(it, StatusOpen, now)

		assert.Equal(t, StatusOpen, got.Status)
		if assert.NotNil(t, got.CompletedAt) {
			assert.Equal(t, earlier, *got.CompletedAt)
		}
	})

	t.Run("re-completing refreshes the stamp", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		it := Item{Status: StatusOpen, CompletedAt: &earlier}

		got := ApplyTransition(it, StatusDone, now)

		if assert.NotNil(t, got.CompletedAt) {
			assert.Equal(t, now, *got.CompletedAt)
		}
	})
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2024-06-15"))
	assert.True(t, IsDate("2024-12-31"))

	assert.False(t, IsDate(""))
	assert.False(t, IsDate("2024-6-15"))
	assert.False(t, IsDate("2024-13-01"))
	assert.False(t, IsDate("2024-06-15T00:00:00Z"))
	assert.False(t, IsDate("15/06/2024"))
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-06-15", 1)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-16", got)

	// Crosses month and year boundaries.
	got, err = AddDays("2024-06-28", 7)
	assert.NoError(t, err)
	assert.Equal(t, "2024-07-05", got)

	got, err = AddDays("2024-12-30", 3)
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-02", got)

	_, err = AddDays("not-a-date", 1)
	assert.Error(t, err)
}

func TestFieldsEmpty(t *testing.T) {
	assert.True(t, Fields{}.Empty())

	title := "x"
	assert.False(t, Fields{Title: &title}.Empty())

	empty := ""
	assert.False(t, Fields{DueDate: &empty}.Empty(), "clearing a date is still a change")
}
