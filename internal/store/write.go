package store

import (
	"context"
	"fmt"
)

// WriteRun inserts one run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored.
func (s *Store) WriteRun(ctx context.Context, rec RunRecord) error {
	var satisfied any
	if rec.Satisfied != nil {
		if *rec.Satisfied {
			satisfied = 1
		} else {
			satisfied = 0
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, case_hash, suite, case_name, satisfied, reason, violation, error_code, error_message, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.CaseHash,
		rec.Suite,
		rec.CaseName,
		satisfied,
		nullable(rec.Reason),
		nullable(rec.Violation),
		nullable(rec.ErrorCode),
		nullable(rec.ErrorMsg),
		rec.Elapsed.Nanoseconds(),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
