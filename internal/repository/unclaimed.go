package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

const unclaimedColumns = `
	id, trans_id, teller_name, bet_number, bet_code, draw_date, bet_amount, win_amount, charge_amount, net,
	mode_of_payment, collector, area, franchise_name, status, return_date, deposit_date, verification_date,
	created_by, created_at, version
`

// unclaimedOrderColumns whitelists what a listing may be sorted by.
var unclaimedOrderColumns = map[string]string{
	"":           "draw_date",
	"draw_date":  "draw_date",
	"created_at": "created_at",
	"win_amount": "win_amount",
	"net":        "net",
	"collector":  "collector",
	"status":     "status",
}

func IsUnclaimedOrderColumn(name string) bool {
	_, ok := unclaimedOrderColumns[name]
	return ok
}

func scanUnclaimed(row rowScanner) (*domain.UnclaimedRecord, error) {
	rec := &domain.UnclaimedRecord{}
	dst := []any{
		&rec.ID,
		&rec.TransID,
		&rec.TellerName,
		&rec.BetNumber,
		&rec.BetCode,
		&rec.DrawDate,
		&rec.BetAmount,
		&rec.WinAmount,
		&rec.ChargeAmount,
		&rec.NetAmount,
		&rec.ModeOfPayment,
		&rec.Collector,
		&rec.Area,
		&rec.Franchise,
		&rec.Status,
		&rec.ReturnDate,
		&rec.DepositDate,
		&rec.VerificationDate,
		&rec.CreatedBy,
		&rec.CreatedAt,
		&rec.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) CreateUnclaimed(ctx context.Context, rec *domain.UnclaimedRecord) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if rec.Status == "" {
		rec.Status = domain.StatusUnclaimed
	}
	rec.RecomputeNet()

	query := `
		INSERT INTO unclaimed (
			trans_id, teller_name, bet_number, bet_code, draw_date, bet_amount, win_amount, charge_amount, net,
			mode_of_payment, collector, area, franchise_name, status, return_date, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, version
	`

	args := []any{
		rec.TransID, rec.TellerName, rec.BetNumber, rec.BetCode, rec.DrawDate, rec.BetAmount, rec.WinAmount,
		rec.ChargeAmount, rec.NetAmount, rec.ModeOfPayment, rec.Collector, rec.Area, rec.Franchise, rec.Status,
		rec.ReturnDate, rec.CreatedBy,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt, &rec.Version)
}

func (r *Repository) GetUnclaimedByID(ctx context.Context, id int64) (*domain.UnclaimedRecord, error) {
	query := `SELECT ` + unclaimedColumns + ` FROM unclaimed WHERE id = $1`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return scanUnclaimed(r.dbpool.QueryRowContext(ctx, query, id))
}

// unclaimedWhere renders filter as a WHERE clause with positional arguments.
func unclaimedWhere(filter domain.UnclaimedFilter) (string, []any) {
	conds := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.Status) > 0 {
		statuses := make([]string, 0, len(filter.Status))
		for _, s := range filter.Status {
			statuses = append(statuses, string(s))
		}
		add("status = ANY($%d)", statuses)
	}
	if filter.Collector != "" {
		add("collector = $%d", filter.Collector)
	}
	if filter.Area != "" {
		add("area = $%d", filter.Area)
	}
	if filter.Franchise != "" {
		add("franchise_name = $%d", filter.Franchise)
	}
	if filter.DrawFrom != nil {
		add("draw_date >= $%d", *filter.DrawFrom)
	}
	if filter.DrawTo != nil {
		add("draw_date < $%d", *filter.DrawTo)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *Repository) ListUnclaimed(ctx context.Context, filter domain.UnclaimedFilter) ([]*domain.UnclaimedRecord, error) {
	where, args := unclaimedWhere(filter)

	column, ok := unclaimedOrderColumns[filter.OrderBy]
	if !ok {
		column = "draw_date"
	}
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}

	query := `SELECT ` + unclaimedColumns + ` FROM unclaimed` + where + ` ORDER BY ` + column + ` ` + direction + `, id`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.UnclaimedRecord, 0)
	for rows.Next() {
		rec, err := scanUnclaimed(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) UpdateUnclaimed(ctx context.Context, rec *domain.UnclaimedRecord) error {
	rec.RecomputeNet()

	query := `
		UPDATE unclaimed
		SET
			trans_id = $1,
			teller_name = $2,
			bet_number = $3,
			bet_code = $4,
			draw_date = $5,
			bet_amount = $6,
			win_amount = $7,
			charge_amount = $8,
			net = $9,
			mode_of_payment = $10,
			collector = $11,
			area = $12,
			franchise_name = $13,
			status = $14,
			return_date = $15,
			deposit_date = $16,
			verification_date = $17,
			version = version + 1
		WHERE id = $18 AND version = $19
		RETURNING version
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{
		rec.TransID, rec.TellerName, rec.BetNumber, rec.BetCode, rec.DrawDate, rec.BetAmount, rec.WinAmount,
		rec.ChargeAmount, rec.NetAmount, rec.ModeOfPayment, rec.Collector, rec.Area, rec.Franchise, rec.Status,
		rec.ReturnDate, rec.DepositDate, rec.VerificationDate, rec.ID, rec.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rec.Version); err != nil {
		return versioned(err)
	}

	return nil
}

func (r *Repository) DeleteUnclaimed(ctx context.Context, id int64) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM unclaimed WHERE id = $1`, id)
	return err
}

// StatusSummary is the count and net total of one record status.
type StatusSummary struct {
	Status domain.UnclaimedStatus `json:"status"`
	Count  int                    `json:"count"`
	Net    float64                `json:"net"`
}

func (r *Repository) SummarizeUnclaimedByStatus(ctx context.Context, filter domain.UnclaimedFilter) ([]StatusSummary, error) {
	where, args := unclaimedWhere(filter)
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(CASE WHEN net <> 0 THEN net ELSE win_amount END), 0)
		FROM unclaimed` + where + `
		GROUP BY status
		ORDER BY status
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]StatusSummary, 0, 4)
	for rows.Next() {
		var s StatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.Net); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
