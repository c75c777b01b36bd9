package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

// GetPendingRecords lists records still owed a return: unclaimed wins and collected-but-not-deposited
// cash. days_overdue is computed by the database with the same three-day grace the feeds use.
func (r *Repository) GetPendingRecords(ctx context.Context, filter domain.PendingFilter) ([]domain.PendingRecord, error) {
	conds := []string{`status IN ('Unclaimed', 'Uncollected')`}
	args := make([]any, 0, 3)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Area != "" {
		add("area = $%d", filter.Area)
	}
	if filter.Franchise != "" {
		add("franchise_name = $%d", filter.Franchise)
	}
	if filter.Collector != "" {
		add("collector = $%d", filter.Collector)
	}

	query := `
		SELECT
			id, trans_id, teller_name, bet_number, bet_code, draw_date, bet_amount, win_amount,
			collector, area, franchise_name, status,
			GREATEST(0, FLOOR(EXTRACT(EPOCH FROM (NOW() - draw_date)) / 86400)::INTEGER - 3) AS days_overdue
		FROM unclaimed
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY draw_date, id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.PendingRecord, 0)
	for rows.Next() {
		var (
			rec  domain.PendingRecord
			draw time.Time
		)
		dst := []any{
			&rec.ID,
			&rec.TransID,
			&rec.TellerName,
			&rec.BetNumber,
			&rec.BetCode,
			&draw,
			&rec.BetAmount,
			&rec.WinAmount,
			&rec.Collector,
			&rec.Area,
			&rec.Franchise,
			&rec.Status,
			&rec.DaysOverdue,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rec.DrawDate = draw.Format(time.RFC3339)
		rec.Source = domain.SourcePrimary
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
