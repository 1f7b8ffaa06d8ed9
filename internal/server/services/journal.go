package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/journals"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
)

type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewJournalService(db *sql.DB, m repomanager.RepositoryManager) *JournalService {
	return &JournalService{db: db, repomanager: m, now: time.Now}
}

// Create stores a journal entry. The pet id is kept as given.
func (s *JournalService) Create(ctx context.Context, userID int64, req models.JournalRequest) (*models.Journal, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Journal, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		j := models.NewJournal(userID, req, s.now())
		created, err := s.repomanager.Journals(tx).Create(ctx, &j)
		if err != nil {
			return nil, fmt.Errorf("error creating journal: %w", err)
		}
		return created, nil
	})
}

func (s *JournalService) List(ctx context.Context, userID int64) ([]*models.Journal, error) {
	return s.repomanager.Journals(s.db).ListByUser(ctx, userID)
}

func (s *JournalService) Detail(ctx context.Context, journalID int64) (*models.Journal, error) {
	j, err := s.repomanager.Journals(s.db).GetByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("journal %d: %w", journalID, err)
	}
	return j, nil
}

func (s *JournalService) Image(ctx context.Context, journalID int64) (string, error) {
	j, err := s.Detail(ctx, journalID)
	if err != nil {
		return "", err
	}
	return j.Picture, nil
}

func (s *JournalService) Owned(ctx context.Context, userID, journalID int64) (*models.Journal, error) {
	j, err := s.Detail(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner("journal", j.UserID, userID); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JournalService) Modify(ctx context.Context, userID, journalID int64, req models.JournalRequest) (*models.Journal, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Journal, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		repo := s.repomanager.Journals(tx)
		j, err := repo.GetByID(ctx, journalID)
		if err != nil {
			return nil, fmt.Errorf("journal %d: %w", journalID, err)
		}
		if err := checkOwner("journal", j.UserID, userID); err != nil {
			return nil, err
		}
		updated := j.Modified(req)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating journal: %w", err)
		}
		return &updated, nil
	})
}

func deleteOwnedJournal(ctx context.Context, repo journals.Repository, userID, journalID int64) (*models.Journal, error) {
	j, err := repo.GetByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("journal %d: %w", journalID, err)
	}
	if err := checkOwner("journal", j.UserID, userID); err != nil {
		return nil, err
	}
	return j, repo.Delete(ctx, journalID)
}

// Delete removes one journal and returns it so the caller can drop its picture.
func (s *JournalService) Delete(ctx context.Context, userID, journalID int64) (*models.Journal, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Journal, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		return deleteOwnedJournal(ctx, s.repomanager.Journals(tx), userID, journalID)
	})
}

// BatchDelete removes all listed journals or none of them. Repeated ids are
// deleted once.
func (s *JournalService) BatchDelete(ctx context.Context, userID int64, journalIDs []int64) ([]*models.Journal, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]*models.Journal, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		repo := s.repomanager.Journals(tx)
		deleted := make([]*models.Journal, 0, len(journalIDs))
		seen := make(map[int64]struct{}, len(journalIDs))
		for _, id := range journalIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			j, err := deleteOwnedJournal(ctx, repo, userID, id)
			if err != nil {
				return nil, err
			}
			deleted = append(deleted, j)
		}
		return deleted, nil
	})
}
