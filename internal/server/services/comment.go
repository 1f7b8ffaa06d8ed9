package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
)

type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m, now: time.Now}
}

func (s *CommentService) Create(ctx context.Context, userID int64, req models.CommentRequest) (*models.Comment, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Comment, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		if _, err := s.repomanager.Boards(tx).GetByID(ctx, req.BoardID); err != nil {
			return nil, reference("board", req.BoardID, err)
		}
		c := models.NewComment(userID, req, s.now())
		created, err := s.repomanager.Comments(tx).Create(ctx, &c)
		if err != nil {
			return nil, fmt.Errorf("error creating comment: %w", err)
		}
		return created, nil
	})
}

// ListByBoard returns the comments of a board, newest first.
func (s *CommentService) ListByBoard(ctx context.Context, boardID int64) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByBoard(ctx, boardID)
}

func (s *CommentService) Modify(ctx context.Context, userID, commentID int64, req models.CommentRequest) (*models.Comment, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Comment, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		repo := s.repomanager.Comments(tx)
		c, err := repo.GetByID(ctx, commentID)
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", commentID, err)
		}
		if err := checkOwner("comment", c.UserID, userID); err != nil {
			return nil, err
		}
		updated := c.Modified(req)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating comment: %w", err)
		}
		return &updated, nil
	})
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return err
		}
		repo := s.repomanager.Comments(tx)
		c, err := repo.GetByID(ctx, commentID)
		if err != nil {
			return fmt.Errorf("comment %d: %w", commentID, err)
		}
		if err := checkOwner("comment", c.UserID, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, commentID)
	})
}
