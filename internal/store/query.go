package store

import (
	"context"
	"fmt"
	"strings"
)

// MaxQueryRows caps the row count of the read-only query surface.
const MaxQueryRows = 1000

// ErrNotReadOnly is returned for anything that is not a plain SELECT.
var ErrNotReadOnly = fmt.Errorf("only SELECT statements are allowed")

// ValidateReadOnly rejects every statement that is not a single SELECT.
// The check is deliberately conservative: no WITH, no semicolons, no
// data-modifying keywords anywhere in the text.
func ValidateReadOnly(query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return fmt.Errorf("empty query")
	}
	if strings.Contains(q, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}

	lower := strings.ToLower(q)
	if !strings.HasPrefix(lower, "select") {
		return ErrNotReadOnly
	}

	for _, kw := range []string{"insert", "update", "delete", "drop", "alter", "create", "truncate", "grant", "copy"} {
		if containsWord(lower, kw) {
			return fmt.Errorf("forbidden keyword %q: %w", kw, ErrNotReadOnly)
		}
	}

	return nil
}

func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordByte(s[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(s) || !isWordByte(s[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(word)
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// ReadOnlyQuery runs an arbitrary retrieval statement for the downstream
// analytics tooling. Rows come back as column-name maps, capped at
// MaxQueryRows.
func (db *Database) ReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error) {
	if err := ValidateReadOnly(query); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var results []map[string]any
	for rows.Next() {
		if len(results) >= MaxQueryRows {
			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
