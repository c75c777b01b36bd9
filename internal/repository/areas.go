package repository

import (
	"context"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

func (r *Repository) GetAllAreas(ctx context.Context) ([]*domain.Area, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, `SELECT id, name, description, created_at, version FROM areas ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := make([]*domain.Area, 0)
	for rows.Next() {
		area := &domain.Area{}
		if err := rows.Scan(&area.ID, &area.Name, &area.Description, &area.CreatedAt, &area.Version); err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return areas, nil
}

func (r *Repository) GetAreaByID(ctx context.Context, id int64) (*domain.Area, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	area := &domain.Area{ID: id}
	query := `SELECT name, description, created_at, version FROM areas WHERE id = $1`
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&area.Name, &area.Description, &area.CreatedAt, &area.Version); err != nil {
		return nil, err
	}

	return area, nil
}

func (r *Repository) CreateArea(ctx context.Context, area *domain.Area) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO areas (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`
	return r.dbpool.QueryRowContext(ctx, query, area.Name, area.Description).Scan(&area.ID, &area.CreatedAt, &area.Version)
}

func (r *Repository) UpdateArea(ctx context.Context, area *domain.Area) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `
		UPDATE areas
		SET name = $1, description = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`
	if err := r.dbpool.QueryRowContext(ctx, query, area.Name, area.Description, area.ID, area.Version).Scan(&area.Version); err != nil {
		return versioned(err)
	}

	return nil
}

func (r *Repository) DeleteArea(ctx context.Context, id int64) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	return err
}
