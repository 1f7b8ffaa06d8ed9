package pets

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

const petColumns = `id, user_id, kind_id, species, name, gender, neutralize, birth, weight, animal_pic, death, diseases, description`

func scanPet(row interface{ Scan(...any) error }) (*models.Pet, error) {
	p := &models.Pet{}
	var birth sql.NullTime
	err := row.Scan(&p.ID, &p.UserID, &p.KindID, &p.Species, &p.Name, &p.Gender, &p.Neutralize,
		&birth, &p.Weight, &p.AnimalPic, &p.Death, &p.Diseases, &p.Description)
	if err != nil {
		return nil, err
	}
	if birth.Valid {
		p.Birth = birth.Time
	}
	return p, nil
}

// birthArg stores an unset birth date as NULL.
func birthArg(p *models.Pet) any {
	if p.Birth.IsZero() {
		return nil
	}
	return p.Birth
}

func (r *PostgresRepository) Create(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	query :=
		`INSERT INTO pets (user_id, kind_id, species, name, gender, neutralize, birth, weight, animal_pic, death, diseases, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		pet.UserID, pet.KindID, pet.Species, pet.Name, pet.Gender, pet.Neutralize,
		birthArg(pet), pet.Weight, pet.AnimalPic, pet.Death, pet.Diseases, pet.Description,
	).Scan(&pet.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return pet, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`
	p, err := scanPet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE user_id = $1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Pet, error) {
	if len(ids) == 0 {
		return []*models.Pet{}, nil
	}
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = ANY($1) ORDER BY id`
	return r.list(ctx, query, ids)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, pet *models.Pet) error {
	query :=
		`UPDATE pets
		 SET kind_id = $2, species = $3, name = $4, gender = $5, neutralize = $6, birth = $7,
		     weight = $8, animal_pic = $9, death = $10, diseases = $11, description = $12
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query, pet.ID,
		pet.KindID, pet.Species, pet.Name, pet.Gender, pet.Neutralize, birthArg(pet),
		pet.Weight, pet.AnimalPic, pet.Death, pet.Diseases, pet.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}
