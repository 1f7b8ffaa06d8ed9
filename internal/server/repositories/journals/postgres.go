package journals

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

const journalColumns = `id, user_id, pet_id, picture, part, symptom, result, created_at`

func scanJournal(row interface{ Scan(...any) error }) (*models.Journal, error) {
	j := &models.Journal{}
	if err := row.Scan(&j.ID, &j.UserID, &j.PetID, &j.Picture, &j.Part, &j.Symptom, &j.Result, &j.CreatedAt); err != nil {
		return nil, err
	}
	return j, nil
}

func (r *PostgresRepository) Create(ctx context.Context, j *models.Journal) (*models.Journal, error) {
	query :=
		`INSERT INTO journals (user_id, pet_id, picture, part, symptom, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `
	err := r.db.QueryRowContext(ctx, query, j.UserID, j.PetID, j.Picture, j.Part, j.Symptom, j.Result, j.CreatedAt).Scan(&j.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1`
	j, err := scanJournal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) Update(ctx context.Context, j *models.Journal) error {
	query :=
		`UPDATE journals
		 SET pet_id = $2, picture = $3, part = $4, symptom = $5, result = $6
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query, j.ID, j.PetID, j.Picture, j.Part, j.Symptom, j.Result)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) DeleteByPet(ctx context.Context, petID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journals WHERE pet_id = $1`, petID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE user_id = $1 ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Journal, 0)
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
