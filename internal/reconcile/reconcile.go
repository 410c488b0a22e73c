// Package reconcile writes extractor output into the store. Each save is
// one transaction; a failed save rolls back and is logged, never aborting
// the batch it belongs to. Re-running a save with identical input leaves
// the database unchanged apart from updated_at.
package reconcile

import (
	"database/sql"
	"strings"
	"time"
)

// Stats counts the outcome of one reconciliation batch.
type Stats struct {
	Saved  int
	Failed int
}

func nullStr(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDate(iso string) sql.NullTime {
	if iso == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullInt64Ptr(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullInt32Ptr(p *int32) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *p, Valid: true}
}

func nullIntPtr(p *int) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*p), Valid: true}
}

func nullInt(n int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(n), Valid: true}
}

func nullBool(b bool) sql.NullBool {
	return sql.NullBool{Bool: b, Valid: true}
}

func nullFloatPtr(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
