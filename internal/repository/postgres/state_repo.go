package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"detos/internal/domain"
	"detos/internal/port"
)

type stateRepo struct {
	db *sqlx.DB
}

// NewStateRepo creates a new PostgreSQL-backed StateRepository.
func NewStateRepo(db *sqlx.DB) port.StateRepository {
	return &stateRepo{db: db}
}

func (r *stateRepo) GetByID(ctx context.Context, id int) (*domain.State, error) {
	var state domain.State
	err := r.db.GetContext(ctx, &state, "SELECT * FROM states WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("stateRepo.GetByID: %w", err)
	}
	return &state, nil
}

func (r *stateRepo) List(ctx context.Context) ([]domain.State, error) {
	var states []domain.State
	err := r.db.SelectContext(ctx, &states, "SELECT * FROM states ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("stateRepo.List: %w", err)
	}
	return states, nil
}
