package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
)

type PetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPetService(db *sql.DB, m repomanager.RepositoryManager) *PetService {
	return &PetService{db: db, repomanager: m}
}

func (s *PetService) Create(ctx context.Context, userID int64, req models.PetRequest) (*models.Pet, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Pet, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		if _, err := s.repomanager.Kinds(tx).GetByID(ctx, req.KindID); err != nil {
			return nil, reference("kind", req.KindID, err)
		}
		pet := models.NewPet(userID, req)
		created, err := s.repomanager.Pets(tx).Create(ctx, &pet)
		if err != nil {
			return nil, fmt.Errorf("error creating pet: %w", err)
		}
		return created, nil
	})
}

// List returns the pets of an active user.
func (s *PetService) List(ctx context.Context, userID int64) ([]*models.Pet, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]*models.Pet, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		return s.repomanager.Pets(tx).ListByUser(ctx, userID)
	})
}

func (s *PetService) Detail(ctx context.Context, petID int64) (*models.Pet, error) {
	p, err := s.repomanager.Pets(s.db).GetByID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("pet %d: %w", petID, err)
	}
	return p, nil
}

// Image returns the stored picture key of a pet.
func (s *PetService) Image(ctx context.Context, petID int64) (string, error) {
	p, err := s.Detail(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.AnimalPic, nil
}

// Owned returns the pet when userID owns it, common.ErrForbidden otherwise.
// The HTTP layer calls it before touching the pet's image.
func (s *PetService) Owned(ctx context.Context, userID, petID int64) (*models.Pet, error) {
	p, err := s.Detail(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner("pet", p.UserID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PetService) Modify(ctx context.Context, userID, petID int64, req models.PetRequest) (*models.Pet, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Pet, error) {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return nil, err
		}
		repo := s.repomanager.Pets(tx)
		p, err := repo.GetByID(ctx, petID)
		if err != nil {
			return nil, fmt.Errorf("pet %d: %w", petID, err)
		}
		if _, err := s.repomanager.Kinds(tx).GetByID(ctx, req.KindID); err != nil {
			return nil, reference("kind", req.KindID, err)
		}
		if err := checkOwner("pet", p.UserID, userID); err != nil {
			return nil, err
		}
		updated := p.Modified(req)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating pet: %w", err)
		}
		return &updated, nil
	})
}

// Delete removes a pet together with its journals. The owner's primary pet
// is cleared when it pointed at this pet; walk links go by cascade.
func (s *PetService) Delete(ctx context.Context, userID, petID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := activeUser(ctx, s.repomanager.Users(tx), userID); err != nil {
			return err
		}
		repo := s.repomanager.Pets(tx)
		p, err := repo.GetByID(ctx, petID)
		if err != nil {
			return fmt.Errorf("pet %d: %w", petID, err)
		}
		if err := checkOwner("pet", p.UserID, userID); err != nil {
			return err
		}
		if _, err := s.repomanager.Journals(tx).DeleteByPet(ctx, petID); err != nil {
			return fmt.Errorf("error deleting journals: %w", err)
		}
		if err := s.repomanager.Users(tx).ClearPrimaryPet(ctx, userID, petID); err != nil {
			return fmt.Errorf("error clearing primary pet: %w", err)
		}
		return repo.Delete(ctx, petID)
	})
}

func (s *PetService) Kinds(ctx context.Context) ([]*models.Kind, error) {
	return s.repomanager.Kinds(s.db).List(ctx)
}

func (s *PetService) Kind(ctx context.Context, kindID int64) (*models.Kind, error) {
	k, err := s.repomanager.Kinds(s.db).GetByID(ctx, kindID)
	if err != nil {
		return nil, fmt.Errorf("kind %d: %w", kindID, err)
	}
	return k, nil
}
