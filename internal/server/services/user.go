package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/auth"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = bcrypt.DefaultCost

// TokenIssuer is the part of auth.TokenProvider the user service needs.
type TokenIssuer interface {
	Generate(subject string) (auth.TokenPair, error)
	Validate(token string) (bool, error)
}

// UserService handles accounts and the refresh-token lifecycle.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

func checkMemberID(ctx context.Context, repo users.Repository, memberID string) error {
	taken, err := repo.ExistsByMemberID(ctx, memberID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("member id %q: %w", memberID, common.ErrDuplicate)
	}
	return nil
}

func checkNickname(ctx context.Context, repo users.Repository, nickname string) error {
	taken, err := repo.ExistsByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("nickname %q: %w", nickname, common.ErrDuplicate)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Register creates an account. Member id and nickname are checked before any
// write; a unique violation racing past the check is also reported as
// common.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, req models.UserRequest) (*models.User, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)
		if err := checkMemberID(ctx, repo, req.MemberID); err != nil {
			return nil, err
		}
		if err := checkNickname(ctx, repo, req.Nickname); err != nil {
			return nil, err
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u := models.User{}.Modified(req, hash)
		created, err := repo.Create(ctx, &u)
		if err != nil {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		return created, nil
	})
}

// CheckMemberID returns common.ErrDuplicate when memberID is taken.
func (s *UserService) CheckMemberID(ctx context.Context, memberID string) error {
	return checkMemberID(ctx, s.repomanager.Users(s.db), memberID)
}

// CheckNickname returns common.ErrDuplicate when nickname is taken.
func (s *UserService) CheckNickname(ctx context.Context, nickname string) error {
	return checkNickname(ctx, s.repomanager.Users(s.db), nickname)
}

// Login verifies credentials and stores the new refresh token as the only
// valid one for the user.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (auth.TokenPair, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (auth.TokenPair, error) {
		u, err := s.repomanager.Users(tx).GetByMemberID(ctx, req.MemberID)
		if err != nil {
			return auth.TokenPair{}, fmt.Errorf("member %q: %w", req.MemberID, err)
		}
		if u.IsLeft {
			return auth.TokenPair{}, fmt.Errorf("member %q has left: %w", req.MemberID, common.ErrInvalidState)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
			return auth.TokenPair{}, common.ErrorUnauthorized
		}
		return s.issue(ctx, tx, Subject(u.ID))
	})
}

func (s *UserService) issue(ctx context.Context, tx dbx.DBTX, subject string) (auth.TokenPair, error) {
	pair, err := s.tokens.Generate(subject)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("generate tokens: %w", err)
	}
	if err := s.repomanager.RefreshTokens(tx).Save(ctx, subject, pair.RefreshToken, pair.RefreshExpiresAt); err != nil {
		return auth.TokenPair{}, fmt.Errorf("error saving refresh token: %w", err)
	}
	return pair, nil
}

// Reissue rotates a refresh token. Expired or malformed tokens give
// common.ErrInvalidToken; a well-formed token that is no longer stored gives
// common.ErrLoggedOut.
func (s *UserService) Reissue(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	ok, err := s.tokens.Validate(refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if !ok {
		return auth.TokenPair{}, fmt.Errorf("refresh token expired: %w", common.ErrInvalidToken)
	}

	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (auth.TokenPair, error) {
		stored, err := s.repomanager.RefreshTokens(tx).FindByValue(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return auth.TokenPair{}, common.ErrLoggedOut
			}
			return auth.TokenPair{}, fmt.Errorf("error searching refresh token: %w", err)
		}
		return s.issue(ctx, tx, stored.Subject)
	})
}

// Logout forgets refreshToken. Unknown tokens are ignored.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).DeleteByValue(ctx, refreshToken)
}

func (s *UserService) Detail(ctx context.Context, userID int64) (*models.User, error) {
	return activeUser(ctx, s.repomanager.Users(s.db), userID)
}

func (s *UserService) ProfilePicture(ctx context.Context, userID int64) (string, error) {
	u, err := activeUser(ctx, s.repomanager.Users(s.db), userID)
	if err != nil {
		return "", err
	}
	return u.ProfilePic, nil
}

// Modify updates the profile. Uniqueness is re-checked only for a changed
// member id or nickname; an empty password keeps the current hash.
func (s *UserService) Modify(ctx context.Context, userID int64, req models.UserRequest) (*models.User, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)
		u, err := activeUser(ctx, repo, userID)
		if err != nil {
			return nil, err
		}
		if req.MemberID != u.MemberID {
			if err := checkMemberID(ctx, repo, req.MemberID); err != nil {
				return nil, err
			}
		}
		if req.Nickname != u.Nickname {
			if err := checkNickname(ctx, repo, req.Nickname); err != nil {
				return nil, err
			}
		}

		var hash string
		if req.Password != "" {
			if hash, err = hashPassword(req.Password); err != nil {
				return nil, err
			}
		}
		updated := u.Modified(req, hash)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating user: %w", err)
		}
		return &updated, nil
	})
}

// ModifyPrimaryPet points the user at one of their pets; common.NoPet unsets it.
func (s *UserService) ModifyPrimaryPet(ctx context.Context, userID, petID int64) (*models.User, error) {
	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)
		u, err := activeUser(ctx, repo, userID)
		if err != nil {
			return nil, err
		}
		if petID != common.NoPet {
			pet, err := s.repomanager.Pets(tx).GetByID(ctx, petID)
			if err != nil {
				return nil, fmt.Errorf("pet %d: %w", petID, err)
			}
			if pet.UserID != userID {
				return nil, fmt.Errorf("pet %d belongs to another user: %w", petID, common.ErrInvalidReference)
			}
		}
		updated := u.WithPrimaryPet(petID)
		if err := repo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("error updating user: %w", err)
		}
		return &updated, nil
	})
}

// Quit soft-deletes the account and revokes its refresh token.
func (s *UserService) Quit(ctx context.Context, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		u, err := repo.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("user %d: %w", userID, err)
		}
		left := u.Left()
		if err := repo.Update(ctx, &left); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		return s.repomanager.RefreshTokens(tx).DeleteBySubject(ctx, Subject(userID))
	})
}

// SweepExpiredTokens deletes every refresh token that expired before now.
func (s *UserService) SweepExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, now)
}
