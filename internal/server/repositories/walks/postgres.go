package walks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanWalk(row interface{ Scan(...any) error }) (*models.Walk, error) {
	w := &models.Walk{}
	if err := row.Scan(&w.ID, &w.UserID, &w.Distance, &w.StartTime, &w.EndTime); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.Walk) (*models.Walk, error) {
	query :=
		`INSERT INTO walks (user_id, distance, start_time, end_time)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `
	if err := r.db.QueryRowContext(ctx, query, w.UserID, w.Distance, w.StartTime, w.EndTime).Scan(&w.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return w, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Walk, error) {
	query := `SELECT id, user_id, distance, start_time, end_time FROM walks WHERE id = $1`
	w, err := scanWalk(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return w, nil
}

func (r *PostgresRepository) Update(ctx context.Context, w *models.Walk) error {
	query := `UPDATE walks SET distance = $2, start_time = $3, end_time = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, w.ID, w.Distance, w.StartTime, w.EndTime)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM walks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Walk, error) {
	query := `SELECT id, user_id, distance, start_time, end_time FROM walks WHERE user_id = $1 ORDER BY id DESC`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByPet(ctx context.Context, petID int64) ([]*models.Walk, error) {
	query :=
		`SELECT w.id, w.user_id, w.distance, w.start_time, w.end_time
		 FROM walks w
		 JOIN walk_pets wp ON wp.walk_id = w.id
		 WHERE wp.pet_id = $1
		 ORDER BY w.id DESC
		 `
	return r.list(ctx, query, petID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg int64) ([]*models.Walk, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Walk, 0)
	for rows.Next() {
		w, err := scanWalk(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
