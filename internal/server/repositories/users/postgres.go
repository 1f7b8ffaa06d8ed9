package users

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

const userColumns = `id, member_id, password, nickname, gender, phone, email, profile_pic, introduce, is_left, pet_id, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.MemberID, &u.Password, &u.Nickname, &u.Gender, &u.Phone,
		&u.Email, &u.ProfilePic, &u.Introduce, &u.IsLeft, &u.PetID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (member_id, password, nickname, gender, phone, email, profile_pic, introduce, is_left, pet_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.MemberID, user.Password, user.Nickname, user.Gender, user.Phone,
		user.Email, user.ProfilePic, user.Introduce, user.IsLeft, user.PetID,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicate, dbx.ConstraintName(err))
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByMemberID(ctx context.Context, memberID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE member_id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, memberID))
}

func (r *PostgresRepository) ExistsByMemberID(ctx context.Context, memberID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE member_id = $1)`, memberID)
}

func (r *PostgresRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE nickname = $1)`, nickname)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET member_id = $2, password = $3, nickname = $4, gender = $5, phone = $6, email = $7,
		     profile_pic = $8, introduce = $9, is_left = $10, pet_id = $11
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, user.ID,
		user.MemberID, user.Password, user.Nickname, user.Gender, user.Phone, user.Email,
		user.ProfilePic, user.Introduce, user.IsLeft, user.PetID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", common.ErrDuplicate, dbx.ConstraintName(err))
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearPrimaryPet(ctx context.Context, userID, petID int64) error {
	query := `UPDATE users SET pet_id = 0 WHERE id = $1 AND pet_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, petID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
