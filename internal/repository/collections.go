package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

type CollectionFilter struct {
	Collector string
	Area      string
	From      *time.Time
	To        *time.Time
}

const insertCollection = `
	INSERT INTO collections (unclaimed_id, collector, area, franchise_name, amount, mode_of_payment, deposit_date, received_by, remarks)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at
`

func collectionArgs(c *domain.CollectionRecord) []any {
	return []any{c.UnclaimedID, c.Collector, c.Area, c.Franchise, c.Amount, c.ModeOfPayment, c.DepositDate, c.ReceivedBy, c.Remarks}
}

func (r *Repository) CreateCollection(ctx context.Context, c *domain.CollectionRecord) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, insertCollection, collectionArgs(c)...).Scan(&c.ID, &c.CreatedAt)
}

// DepositUnclaimed saves rec (already moved to Collected by the caller) and logs the deposit in one
// transaction.
func (r *Repository) DepositUnclaimed(ctx context.Context, rec *domain.UnclaimedRecord, c *domain.CollectionRecord) error {
	ctx, cancel := r.txContext(ctx)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE unclaimed
		SET status = $1, deposit_date = $2, mode_of_payment = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, rec.Status, rec.DepositDate, rec.ModeOfPayment, rec.ID, rec.Version).Scan(&rec.Version); err != nil {
		return versioned(err)
	}

	if err := tx.QueryRowContext(ctx, insertCollection, collectionArgs(c)...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) ListCollections(ctx context.Context, filter CollectionFilter) ([]*domain.CollectionRecord, error) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Collector != "" {
		add("collector = $%d", filter.Collector)
	}
	if filter.Area != "" {
		add("area = $%d", filter.Area)
	}
	if filter.From != nil {
		add("deposit_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("deposit_date < $%d", *filter.To)
	}

	query := `
		SELECT id, unclaimed_id, collector, area, franchise_name, amount, mode_of_payment, deposit_date, received_by, remarks, created_at
		FROM collections
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY deposit_date DESC, id DESC"

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := make([]*domain.CollectionRecord, 0)
	for rows.Next() {
		c := &domain.CollectionRecord{}
		var unclaimedID sql.NullInt64
		dst := []any{&c.ID, &unclaimedID, &c.Collector, &c.Area, &c.Franchise, &c.Amount, &c.ModeOfPayment, &c.DepositDate, &c.ReceivedBy, &c.Remarks, &c.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if unclaimedID.Valid {
			c.UnclaimedID = &unclaimedID.Int64
		}
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collections, nil
}
