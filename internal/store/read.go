package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_hash, suite, case_name, satisfied, reason, violation,
		       error_code, error_message, elapsed_ns, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetRun fetches one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_hash, suite, case_name, satisfied, reason, violation,
		       error_code, error_message, elapsed_ns, created_at
		FROM runs WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get run: %w", err)
		}
		return nil, fmt.Errorf("run %s not found", id)
	}
	rec, err := scanRun(rows)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &rec, nil
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var rec RunRecord
	var satisfied sql.NullInt64
	var reason, violation, errCode, errMsg sql.NullString
	var elapsed int64

	err := rows.Scan(&rec.ID, &rec.CaseHash, &rec.Suite, &rec.CaseName,
		&satisfied, &reason, &violation, &errCode, &errMsg, &elapsed, &rec.CreatedAt)
	if err != nil {
		return rec, err
	}

	if satisfied.Valid {
		v := satisfied.Int64 != 0
		rec.Satisfied = &v
	}
	rec.Reason = reason.String
	rec.Violation = violation.String
	rec.ErrorCode = errCode.String
	rec.ErrorMsg = errMsg.String
	rec.Elapsed = time.Duration(elapsed) * time.Nanosecond
	return rec, nil
}
