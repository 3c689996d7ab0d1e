package doctor

import (
	"context"
	"database/sql"
)

// DatabaseCheck verifies the SQLite database is intact and running
// with the expected pragmas. When a recover func is provided, a
// failed integrity check becomes fixable: Fix quarantines the
// damaged file so the next run starts fresh.
type DatabaseCheck struct {
	conn      *sql.DB
	recoverFn func() error

	corrupt bool
}

// NewDatabaseCheck creates a new database check over an open connection.
func NewDatabaseCheck(conn *sql.DB, recoverFn func() error) *DatabaseCheck {
	return &DatabaseCheck{conn: conn, recoverFn: recoverFn}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	var integrity string
	if err := c.conn.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		c.corrupt = true
		result.Items = append(result.Items, CheckItem{
			Label:   "integrity",
			Status:  StatusFail,
			Detail:  err.Error(),
			Fixable: c.recoverFn != nil,
		})
	} else if integrity != "ok" {
		c.corrupt = true
		result.Items = append(result.Items, CheckItem{
			Label:   "integrity",
			Status:  StatusFail,
			Detail:  integrity,
			Fixable: c.recoverFn != nil,
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "integrity",
			Status: StatusPass,
		})
	}

	var journalMode string
	if err := c.conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode); err != nil || journalMode != "wal" {
		result.Items = append(result.Items, CheckItem{
			Label:  "journal mode",
			Status: StatusWarn,
			Detail: "expected wal, got " + journalMode,
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "journal mode",
			Status: StatusPass,
			Detail: journalMode,
		})
	}

	var foreignKeys int
	if err := c.conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil || foreignKeys != 1 {
		result.Items = append(result.Items, CheckItem{
			Label:  "foreign keys",
			Status: StatusWarn,
			Detail: "not enforced",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "foreign keys",
			Status: StatusPass,
		})
	}

	return result
}

// Fix quarantines a corrupt database file via the recover func. It
// does nothing when the last Run found the database intact.
func (c *DatabaseCheck) Fix(_ context.Context) error {
	if !c.corrupt || c.recoverFn == nil {
		return nil
	}
	return c.recoverFn()
}
