package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petcare/internal/timex"
)

type WalkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	loc         *time.Location
}

func NewWalkService(db *sql.DB, m repomanager.RepositoryManager) *WalkService {
	return &WalkService{db: db, repomanager: m, now: time.Now, loc: time.Local}
}

func (s *WalkService) resolvePet(ctx context.Context, tx dbx.DBTX, petID int64) (*models.Pet, error) {
	p, err := s.repomanager.Pets(tx).GetByID(ctx, petID)
	if err != nil {
		return nil, reference("pet", petID, err)
	}
	return p, nil
}

func (s *WalkService) detail(ctx context.Context, tx dbx.DBTX, w *models.Walk) (*models.WalkDetail, error) {
	links, err := s.repomanager.WalkPets(tx).ListByWalk(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PetID)
	}
	pets, err := s.repomanager.Pets(tx).ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &models.WalkDetail{Walk: *w, Pets: pets}, nil
}

// Register stores a walk and links every listed pet to it. Repeated pet ids
// produce repeated links.
func (s *WalkService) Register(ctx context.Context, userID int64, req models.WalkRequest) (*models.WalkDetail, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.WalkDetail, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		w := models.NewWalk(userID, req)
		created, err := s.repomanager.Walks(tx).Create(ctx, &w)
		if err != nil {
			return nil, fmt.Errorf("error creating walk: %w", err)
		}
		links := s.repomanager.WalkPets(tx)
		for _, petID := range req.PetIDs {
			if _, err := s.resolvePet(ctx, tx, petID); err != nil {
				return nil, err
			}
			if _, err := links.Create(ctx, created.ID, petID); err != nil {
				return nil, fmt.Errorf("error linking pet %d: %w", petID, err)
			}
		}
		return s.detail(ctx, tx, created)
	})
}

// Modify updates the walk and reconciles its pets with req.PetIDs: links of
// dropped pets are deleted, new pets are linked, and pets present in both
// sets are left untouched.
func (s *WalkService) Modify(ctx context.Context, userID, walkID int64, req models.WalkRequest) (*models.WalkDetail, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.WalkDetail, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		repo := s.repomanager.Walks(tx)
		w, err := repo.GetByID(ctx, walkID)
		if err != nil {
			return nil, fmt.Errorf("walk %d: %w", walkID, err)
		}
		if err := checkOwner("walk", w.UserID, userID); err != nil {
			return nil, err
		}

		links := s.repomanager.WalkPets(tx)
		current, err := links.ListByWalk(ctx, walkID)
		if err != nil {
			return nil, err
		}
		currentIDs := make([]int64, 0, len(current))
		for _, l := range current {
			currentIDs = append(currentIDs, l.PetID)
		}

		removed, added := models.DiffPetIDs(currentIDs, req.PetIDs)
		for _, petID := range removed {
			if _, err := s.resolvePet(ctx, tx, petID); err != nil {
				return nil, err
			}
			link, err := links.GetByWalkAndPet(ctx, walkID, petID)
			if err != nil {
				return nil, fmt.Errorf("walk %d pet %d: %w", walkID, petID, err)
			}
			if err := links.Delete(ctx, link.ID); err != nil {
				return nil, err
			}
		}
		for _, petID := range added {
			if _, err := s.resolvePet(ctx, tx, petID); err != nil {
				return nil, err
			}
			if _, err := links.Create(ctx, walkID, petID); err != nil {
				return nil, fmt.Errorf("error linking pet %d: %w", petID, err)
			}
		}

		updated := w.Modified(req)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating walk: %w", err)
		}
		return s.detail(ctx, tx, &updated)
	})
}

func (s *WalkService) Delete(ctx context.Context, userID, walkID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return err
		}
		repo := s.repomanager.Walks(tx)
		w, err := repo.GetByID(ctx, walkID)
		if err != nil {
			return fmt.Errorf("walk %d: %w", walkID, err)
		}
		if err := checkOwner("walk", w.UserID, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, walkID)
	})
}

// ListAll returns the user's walks, newest first, each with its pets.
func (s *WalkService) ListAll(ctx context.Context, userID int64) ([]*models.WalkDetail, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]*models.WalkDetail, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		walks, err := s.repomanager.Walks(tx).ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		result := make([]*models.WalkDetail, 0, len(walks))
		for _, w := range walks {
			d, err := s.detail(ctx, tx, w)
			if err != nil {
				return nil, err
			}
			result = append(result, d)
		}
		return result, nil
	})
}

func (s *WalkService) Detail(ctx context.Context, walkID int64) (*models.WalkDetail, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.WalkDetail, error) {
		w, err := s.repomanager.Walks(tx).GetByID(ctx, walkID)
		if err != nil {
			return nil, fmt.Errorf("walk %d: %w", walkID, err)
		}
		return s.detail(ctx, tx, w)
	})
}

// IsDone reports whether the pet's most recent walk ended today.
func (s *WalkService) IsDone(ctx context.Context, petID int64) (bool, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (bool, error) {
		if _, err := s.resolvePet(ctx, tx, petID); err != nil {
			return false, err
		}
		latest, err := s.repomanager.WalkPets(tx).LatestByPet(ctx, petID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return false, fmt.Errorf("pet %d has no walks: %w", petID, common.ErrInvalidReference)
			}
			return false, err
		}
		w, err := s.repomanager.Walks(tx).GetByID(ctx, latest.WalkID)
		if err != nil {
			return false, fmt.Errorf("walk %d: %w", latest.WalkID, err)
		}
		return timex.SameDay(w.EndTime, s.now(), s.loc), nil
	})
}

// WalkTimeSum adds up distance and elapsed seconds over all walks of a pet.
func (s *WalkService) WalkTimeSum(ctx context.Context, petID int64) (models.WalkTotal, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (models.WalkTotal, error) {
		if _, err := s.resolvePet(ctx, tx, petID); err != nil {
			return models.WalkTotal{}, err
		}
		walks, err := s.repomanager.Walks(tx).ListByPet(ctx, petID)
		if err != nil {
			return models.WalkTotal{}, err
		}
		return models.SumWalks(walks), nil
	})
}
