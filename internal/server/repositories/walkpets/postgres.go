package walkpets

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

func (r *PostgresRepository) Create(ctx context.Context, walkID, petID int64) (*models.WalkPet, error) {
	wp := &models.WalkPet{WalkID: walkID, PetID: petID}
	query := `INSERT INTO walk_pets (walk_id, pet_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, walkID, petID).Scan(&wp.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return wp, nil
}

func (r *PostgresRepository) ListByWalk(ctx context.Context, walkID int64) ([]*models.WalkPet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, walk_id, pet_id FROM walk_pets WHERE walk_id = $1 ORDER BY id`, walkID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.WalkPet, 0)
	for rows.Next() {
		wp := &models.WalkPet{}
		if err := rows.Scan(&wp.ID, &wp.WalkID, &wp.PetID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByWalkAndPet(ctx context.Context, walkID, petID int64) (*models.WalkPet, error) {
	query := `SELECT id, walk_id, pet_id FROM walk_pets WHERE walk_id = $1 AND pet_id = $2 ORDER BY id LIMIT 1`
	return r.one(ctx, query, walkID, petID)
}

func (r *PostgresRepository) LatestByPet(ctx context.Context, petID int64) (*models.WalkPet, error) {
	query := `SELECT id, walk_id, pet_id FROM walk_pets WHERE pet_id = $1 ORDER BY id DESC LIMIT 1`
	return r.one(ctx, query, petID)
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.WalkPet, error) {
	wp := &models.WalkPet{}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&wp.ID, &wp.WalkID, &wp.PetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return wp, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM walk_pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}
