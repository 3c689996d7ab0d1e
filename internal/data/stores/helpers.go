// Package stores provides SQLite-backed implementations of the core
// store interfaces. Calendar dates are stored as YYYY-MM-DD text and
// timestamps as RFC 3339 text, so both compare correctly as strings.
package stores

import (
	"database/sql"
	"time"
)

const timeLayout = time.RFC3339Nano

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// fmtTimePtr returns a driver-level value for a nullable timestamp column.
func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := parseTime(ns.String)
	return &t
}

// nullEmpty maps the empty string to NULL for nullable text columns.
func nullEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func strOr(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
