package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

/* ------------------------------------------------------------------
   Shared DB plumbing
------------------------------------------------------------------ */

// DB is the narrow query surface repositories depend on. Both *sql.DB
// and *sql.Tx satisfy it.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// row is satisfied by *sql.Row and *sql.Rows so scan helpers work for
// both single-row and iterated reads.
type row interface {
	Scan(dest ...any) error
}

// Timestamps are stored as RFC3339 TEXT; calendar dates as YYYY-MM-DD.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func strPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func timePtr(n sql.NullString) *time.Time {
	if !n.Valid || n.String == "" {
		return nil
	}
	t := parseTime(n.String)
	return &t
}
