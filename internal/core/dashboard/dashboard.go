// Package dashboard builds the command center view model: a unified,
// bucketed, priority-ordered list of open action items across every
// source category. The whole pipeline is a pure function of the feed
// rows and today's date so it can be tested without a database.
package dashboard

import (
	"sort"
	"time"

	"github.com/fieldworks/sitecmd/internal/core/item"
)

// BucketKey is one of the four display groupings derived from an
// item's due date relative to today.
type BucketKey string

const (
	BucketOverdue   BucketKey = "overdue"
	BucketDueToday  BucketKey = "due_today"
	BucketUpcoming  BucketKey = "upcoming"
	BucketNoDueDate BucketKey = "no_due_date"
)

// BucketOrder lists the buckets in display order.
var BucketOrder = []BucketKey{BucketOverdue, BucketDueToday, BucketUpcoming, BucketNoDueDate}

// IsValid reports whether the key is one of the four buckets.
func (k BucketKey) IsValid() bool {
	switch k {
	case BucketOverdue, BucketDueToday, BucketUpcoming, BucketNoDueDate:
		return true
	}
	return false
}

// Title returns the human heading for the bucket.
func (k BucketKey) Title() string {
	switch k {
	case BucketOverdue:
		return "Overdue"
	case BucketDueToday:
		return "Due Today"
	case BucketUpcoming:
		return "Upcoming"
	default:
		return "No Due Date"
	}
}

// Row is one record from the open-item feed. Rows are heterogeneous:
// work activities, materials, equipment, and crew entries all flow
// through the same shape, distinguished by Category, with optional
// category-specific fields feeding the normalization fallbacks.
type Row struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	Details    string `json:"details,omitempty"`
	Category   string `json:"category,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Status     string `json:"status,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	DeferUntil string `json:"defer_until,omitempty"`

	ProjectID string `json:"project_id,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
	JobNumber string `json:"job_number,omitempty"`

	// Category-specific fallbacks carried by some sources.
	RequiredDate  string `json:"required_date,omitempty"`
	EquipmentName string `json:"equipment_name,omitempty"`
	WorkerName    string `json:"worker_name,omitempty"`

	// Bucket is trusted when the feed has already computed it.
	Bucket BucketKey `json:"bucket,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry is a normalized row ready for display.
type Entry struct {
	Row

	DisplayTitle   string        `json:"_title"`
	DisplayDetails string        `json:"_details,omitempty"`
	Project        string        `json:"_project"`
	Job            string        `json:"_job_number,omitempty"`
	Due            string        `json:"_due,omitempty"`
	Rank           item.Priority `json:"_priority"`
	Key            BucketKey     `json:"_bucket"`
}

// Board is the assembled command center view model.
type Board struct {
	// Buckets holds the capped, sorted entries per bucket.
	Buckets map[BucketKey][]Entry
	// Counts holds the uncapped entry count per bucket.
	Counts map[BucketKey]int
	// OpenTotal is the sum of all bucket counts.
	OpenTotal int
}

// DefaultBucketCap is the per-bucket display limit. It bounds what is
// rendered, not what is counted.
const DefaultBucketCap = 50

// ComputeBucket derives the bucket for a due date relative to today.
// Both arguments are YYYY-MM-DD strings; the comparison is a plain
// string compare, valid because the format is fixed-width.
func ComputeBucket(due, today string) BucketKey {
	switch {
	case due == "":
		return BucketNoDueDate
	case due < today:
		return BucketOverdue
	case due == today:
		return BucketDueToday
	default:
		return BucketUpcoming
	}
}

// Normalize maps a feed row to a display entry. Title falls back
// through title, details, then category-specific names; the project
// name defaults to "Unknown"; the due date falls back to a required
// date; unrecognized priorities become medium. The bucket supplied by
// the feed is trusted when valid, otherwise computed locally.
func Normalize(r Row, today string) Entry {
	title := firstNonEmpty(r.Title, r.Details, r.EquipmentName, r.WorkerName, "Unnamed")

	projectName := r.SiteName
	if projectName == "" {
		projectName = "Unknown"
	}

	due := r.DueDate
	if due == "" {
		due = r.RequiredDate
	}

	key := r.Bucket
	if !key.IsValid() {
		key = ComputeBucket(due, today)
	}

	return Entry{
		Row:            r,
		DisplayTitle:   title,
		DisplayDetails: r.Details,
		Project:        projectName,
		Job:            r.JobNumber,
		Due:            due,
		Rank:           item.NormalizePriority(r.Priority),
		Key:            key,
	}
}

// Build runs the full pipeline: defer filter, normalization, bucket
// grouping, per-bucket stable sort, and the display cap.
func Build(rows []Row, today string, bucketCap int) Board {
	if bucketCap <= 0 {
		bucketCap = DefaultBucketCap
	}

	board := Board{
		Buckets: make(map[BucketKey][]Entry, len(BucketOrder)),
		Counts:  make(map[BucketKey]int, len(BucketOrder)),
	}

	for _, r := range rows {
		if r.DeferUntil != "" && r.DeferUntil > today {
			continue
		}
		e := Normalize(r, today)
		board.Buckets[e.Key] = append(board.Buckets[e.Key], e)
	}

	for _, key := range BucketOrder {
		entries := board.Buckets[key]
		sortEntries(entries)

		board.Counts[key] = len(entries)
		board.OpenTotal += len(entries)

		if len(entries) > bucketCap {
			board.Buckets[key] = entries[:bucketCap]
		}
	}

	return board
}

// sortEntries orders a bucket by priority rank ascending, then due
// date ascending with missing due dates last. The sort is stable so
// ties keep feed order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Rank.Rank(), entries[j].Rank.Rank()
		if ri != rj {
			return ri < rj
		}

		di, dj := entries[i].Due, entries[j].Due
		switch {
		case di == "" && dj == "":
			return false
		case di == "":
			return false
		case dj == "":
			return true
		default:
			return di < dj
		}
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
