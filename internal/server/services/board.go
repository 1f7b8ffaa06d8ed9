package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
)

const DefaultPageSize = 10

type BoardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewBoardService(db *sql.DB, m repomanager.RepositoryManager) *BoardService {
	return &BoardService{db: db, repomanager: m, now: time.Now}
}

func (s *BoardService) Create(ctx context.Context, userID int64, req models.BoardRequest) (*models.Board, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Board, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		if _, err := s.repomanager.BoardTypes(tx).GetByID(ctx, req.TypeID); err != nil {
			return nil, reference("board type", req.TypeID, err)
		}
		b := models.NewBoard(userID, req, s.now())
		created, err := s.repomanager.Boards(tx).Create(ctx, &b)
		if err != nil {
			return nil, fmt.Errorf("error creating board: %w", err)
		}
		return created, nil
	})
}

// List pages through boards of one type, newest first. A non-positive size
// falls back to DefaultPageSize.
func (s *BoardService) List(ctx context.Context, q models.BoardQuery) ([]*models.Board, error) {
	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	return s.repomanager.Boards(s.db).List(ctx, q.TypeID, q.Word, size, common.PageOffset(q.Page, size))
}

func (s *BoardService) Types(ctx context.Context) ([]*models.BoardType, error) {
	return s.repomanager.BoardTypes(s.db).List(ctx)
}

// Detail counts a view and returns the board with its comments.
func (s *BoardService) Detail(ctx context.Context, boardID int64) (*models.BoardDetail, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.BoardDetail, error) {
		repo := s.repomanager.Boards(tx)
		b, err := repo.GetByID(ctx, boardID)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", boardID, err)
		}
		if b.Views, err = repo.IncrementViews(ctx, boardID); err != nil {
			return nil, fmt.Errorf("error counting view: %w", err)
		}
		comments, err := s.repomanager.Comments(tx).ListByBoard(ctx, boardID)
		if err != nil {
			return nil, err
		}
		return &models.BoardDetail{Board: *b, Comments: comments}, nil
	})
}

// Owned returns the board when userID wrote it, common.ErrForbidden otherwise.
func (s *BoardService) Owned(ctx context.Context, userID, boardID int64) (*models.Board, error) {
	b, err := s.repomanager.Boards(s.db).GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("board %d: %w", boardID, err)
	}
	if err := checkOwner("board", b.UserID, userID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BoardService) Image(ctx context.Context, boardID int64) (string, error) {
	b, err := s.repomanager.Boards(s.db).GetByID(ctx, boardID)
	if err != nil {
		return "", fmt.Errorf("board %d: %w", boardID, err)
	}
	return b.Image, nil
}

func (s *BoardService) Modify(ctx context.Context, userID, boardID int64, req models.BoardRequest) (*models.Board, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Board, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		repo := s.repomanager.Boards(tx)
		b, err := repo.GetByID(ctx, boardID)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", boardID, err)
		}
		if _, err := s.repomanager.BoardTypes(tx).GetByID(ctx, req.TypeID); err != nil {
			return nil, reference("board type", req.TypeID, err)
		}
		if err := checkOwner("board", b.UserID, userID); err != nil {
			return nil, err
		}
		updated := b.Modified(req)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating board: %w", err)
		}
		return &updated, nil
	})
}

// Delete removes the board after its comments.
func (s *BoardService) Delete(ctx context.Context, userID, boardID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return err
		}
		repo := s.repomanager.Boards(tx)
		b, err := repo.GetByID(ctx, boardID)
		if err != nil {
			return fmt.Errorf("board %d: %w", boardID, err)
		}
		if err := checkOwner("board", b.UserID, userID); err != nil {
			return err
		}
		if _, err := s.repomanager.Comments(tx).DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("error deleting comments: %w", err)
		}
		return repo.Delete(ctx, boardID)
	})
}
