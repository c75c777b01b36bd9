package repository

import (
	"context"
	"encoding/json"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

func (r *Repository) CreateReport(ctx context.Context, report *domain.Report) error {
	lines, err := json.Marshal(report.Lines)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(report.Totals)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reports (title, period_start, period_end, lines, totals, generated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{report.Title, report.PeriodStart, report.PeriodEnd, string(lines), string(totals), report.GeneratedBy}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&report.ID, &report.CreatedAt)
}

func (r *Repository) GetReportByID(ctx context.Context, id int64) (*domain.Report, error) {
	query := `
		SELECT id, title, period_start, period_end, lines, totals, generated_by, created_at
		FROM reports WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	report := &domain.Report{}
	var lines, totals []byte
	dst := []any{&report.ID, &report.Title, &report.PeriodStart, &report.PeriodEnd, &lines, &totals, &report.GeneratedBy, &report.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lines, &report.Lines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totals, &report.Totals); err != nil {
		return nil, err
	}

	return report, nil
}

// GetAllReports lists report headers; lines are left empty.
func (r *Repository) GetAllReports(ctx context.Context) ([]*domain.Report, error) {
	query := `
		SELECT id, title, period_start, period_end, totals, generated_by, created_at
		FROM reports ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		report := &domain.Report{Lines: []domain.ReportRow{}}
		var totals []byte
		if err := rows.Scan(&report.ID, &report.Title, &report.PeriodStart, &report.PeriodEnd, &totals, &report.GeneratedBy, &report.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(totals, &report.Totals); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *Repository) DeleteReport(ctx context.Context, id int64) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	return err
}
