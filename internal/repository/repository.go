package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/config"
)

// ErrEditConflict means a versioned update matched no row: someone else saved first.
var ErrEditConflict = errors.New("edit conflict")

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) txContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}

// versioned turns a missing row on a version-checked update into ErrEditConflict.
func versioned(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEditConflict
	}
	return err
}
