package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
	"fairaudit/ports"
)

// ReportRepositoryImpl implements ReportRepository for PostgreSQL.
// The payload is stored as one JSONB document; the columns worth
// indexing (status, score, process type) are lifted out for queries.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// Schema creates the backing table if missing
const Schema = `
CREATE TABLE IF NOT EXISTS fairness_reports (
	id            TEXT PRIMARY KEY,
	process_type  TEXT NOT NULL,
	sample_size   INTEGER NOT NULL,
	overall_score DOUBLE PRECISION NOT NULL,
	compliance    TEXT NOT NULL,
	generated_at  TIMESTAMPTZ NOT NULL,
	payload       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fairness_reports_generated_at ON fairness_reports (generated_at DESC);
`

// Migrate applies the repository schema
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate fairness_reports: %w", err)
	}
	return nil
}

// Save persists an issued report
func (r *ReportRepositoryImpl) Save(ctx context.Context, report *fairness.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", report.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO fairness_reports (
			id, process_type, sample_size, overall_score, compliance, generated_at, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		report.ID.String(),
		report.Context.ProcessType,
		report.SampleSize,
		report.OverallScore,
		string(report.Compliance),
		report.GeneratedAt.Time(),
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	return nil
}

// GetByID fetches one report by its identifier
func (r *ReportRepositoryImpl) GetByID(ctx context.Context, id core.ReportID) (*fairness.Report, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM fairness_reports WHERE id = $1`, id.String(),
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}

	var report fairness.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", id, err)
	}
	return &report, nil
}

// ListRecent returns the most recently generated reports
func (r *ReportRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*fairness.Report, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM fairness_reports ORDER BY generated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*fairness.Report
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		var report fairness.Report
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report row: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
