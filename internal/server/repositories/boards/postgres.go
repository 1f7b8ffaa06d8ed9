package boards

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

const boardColumns = `id, user_id, type_id, title, content, image, views, created_at`

func scanBoard(row interface{ Scan(...any) error }) (*models.Board, error) {
	b := &models.Board{}
	if err := row.Scan(&b.ID, &b.UserID, &b.TypeID, &b.Title, &b.Content, &b.Image, &b.Views, &b.CreatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, board *models.Board) (*models.Board, error) {
	query :=
		`INSERT INTO boards (user_id, type_id, title, content, image, views, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `
	err := r.db.QueryRowContext(ctx, query,
		board.UserID, board.TypeID, board.Title, board.Content, board.Image, board.Views, board.CreatedAt,
	).Scan(&board.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return board, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = $1`
	b, err := scanBoard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Update(ctx context.Context, board *models.Board) error {
	query :=
		`UPDATE boards
		 SET type_id = $2, title = $3, content = $4, image = $5
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query, board.ID, board.TypeID, board.Title, board.Content, board.Image)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) List(ctx context.Context, typeID int64, word string, limit, offset int) ([]*models.Board, error) {
	query :=
		`SELECT ` + boardColumns + `
		 FROM boards
		 WHERE type_id = $1 AND position($2 in title) > 0
		 ORDER BY id DESC
		 LIMIT $3 OFFSET $4
		 `
	rows, err := r.db.QueryContext(ctx, query, typeID, word, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Board, 0)
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx, `UPDATE boards SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return views, nil
}
