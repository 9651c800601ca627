package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const selectColumns = `
SELECT id, candidate_name, job_role, job_description, provider, model, status,
       result, error_code, error_message, created_at, completed_at
FROM analyses`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, candidate_name, job_role, job_description, provider, model, status, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.CandidateName,
		analysis.JobRole,
		analysis.JobDescription,
		analysis.Provider,
		analysis.Model,
		analysis.Status,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+`
WHERE id = $1
LIMIT 1`, analysisID)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return a, nil
}

// Complete records the final status and result of an analysis.
func (r *PGRepo) Complete(ctx context.Context, analysisID, status string, result *Result, errorCode, errorMessage string, completedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = $2,
    result = $3,
    error_code = $4,
    error_message = $5,
    completed_at = $6,
    model = COALESCE(NULLIF(model, ''), $7)
WHERE id = $1`
	var payload []byte
	var modelUsed string
	if result != nil {
		b, err := json.Marshal(result)
		if err != nil {
			return err
		}
		payload = b
		modelUsed = result.ModelUsed
	}
	res, err := r.DB.ExecContext(ctx, query,
		analysisID,
		status,
		payload,
		nullString(errorCode),
		nullString(errorMessage),
		completedAt,
		modelUsed,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns analyses newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, selectColumns+`
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (Analysis, error) {
	var a Analysis
	var result sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var completedAt sql.NullTime
	if err := s.Scan(
		&a.ID,
		&a.CandidateName,
		&a.JobRole,
		&a.JobDescription,
		&a.Provider,
		&a.Model,
		&a.Status,
		&result,
		&errorCode,
		&errorMessage,
		&a.CreatedAt,
		&completedAt,
	); err != nil {
		return Analysis{}, err
	}
	if result.Valid && result.String != "" {
		var parsed Result
		if err := json.Unmarshal([]byte(result.String), &parsed); err != nil {
			telemetry.Warn("analysis.result_decode_failed", map[string]any{"analysis_id": a.ID, "err": err})
		} else {
			a.Result = &parsed
		}
	}
	if errorCode.Valid {
		a.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		a.ErrorMessage = errorMessage.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
