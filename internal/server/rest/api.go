// Package rest is the HTTP transport of the petcare server: a chi router,
// the JSON envelope every endpoint answers with, bearer-token
// authentication and the handlers that bridge requests to services.
package rest

import (
	"context"

	"github.com/dmitrijs2005/petcare/internal/server/auth"
	"github.com/dmitrijs2005/petcare/internal/server/models"
)

// The interfaces below list what the handlers call on the services package.

type UserAPI interface {
	Register(ctx context.Context, req models.UserRequest) (*models.User, error)
	CheckMemberID(ctx context.Context, memberID string) error
	CheckNickname(ctx context.Context, nickname string) error
	Login(ctx context.Context, req models.LoginRequest) (auth.TokenPair, error)
	Reissue(ctx context.Context, refreshToken string) (auth.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Detail(ctx context.Context, userID int64) (*models.User, error)
	ProfilePicture(ctx context.Context, userID int64) (string, error)
	Modify(ctx context.Context, userID int64, req models.UserRequest) (*models.User, error)
	ModifyPrimaryPet(ctx context.Context, userID, petID int64) (*models.User, error)
	Quit(ctx context.Context, userID int64) error
}

type PetAPI interface {
	Create(ctx context.Context, userID int64, req models.PetRequest) (*models.Pet, error)
	List(ctx context.Context, userID int64) ([]*models.Pet, error)
	Detail(ctx context.Context, petID int64) (*models.Pet, error)
	Owned(ctx context.Context, userID, petID int64) (*models.Pet, error)
	Image(ctx context.Context, petID int64) (string, error)
	Modify(ctx context.Context, userID, petID int64, req models.PetRequest) (*models.Pet, error)
	Delete(ctx context.Context, userID, petID int64) error
	Kinds(ctx context.Context) ([]*models.Kind, error)
	Kind(ctx context.Context, kindID int64) (*models.Kind, error)
}

type BoardAPI interface {
	Create(ctx context.Context, userID int64, req models.BoardRequest) (*models.Board, error)
	List(ctx context.Context, q models.BoardQuery) ([]*models.Board, error)
	Types(ctx context.Context) ([]*models.BoardType, error)
	Detail(ctx context.Context, boardID int64) (*models.BoardDetail, error)
	Owned(ctx context.Context, userID, boardID int64) (*models.Board, error)
	Image(ctx context.Context, boardID int64) (string, error)
	Modify(ctx context.Context, userID, boardID int64, req models.BoardRequest) (*models.Board, error)
	Delete(ctx context.Context, userID, boardID int64) error
}

type CommentAPI interface {
	Create(ctx context.Context, userID int64, req models.CommentRequest) (*models.Comment, error)
	ListByBoard(ctx context.Context, boardID int64) ([]*models.Comment, error)
	Modify(ctx context.Context, userID, commentID int64, req models.CommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, userID, commentID int64) error
}

type JournalAPI interface {
	Create(ctx context.Context, userID int64, req models.JournalRequest) (*models.Journal, error)
	List(ctx context.Context, userID int64) ([]*models.Journal, error)
	Detail(ctx context.Context, journalID int64) (*models.Journal, error)
	Owned(ctx context.Context, userID, journalID int64) (*models.Journal, error)
	Image(ctx context.Context, journalID int64) (string, error)
	Modify(ctx context.Context, userID, journalID int64, req models.JournalRequest) (*models.Journal, error)
	Delete(ctx context.Context, userID, journalID int64) (*models.Journal, error)
	BatchDelete(ctx context.Context, userID int64, journalIDs []int64) ([]*models.Journal, error)
}

type WalkAPI interface {
	Register(ctx context.Context, userID int64, req models.WalkRequest) (*models.WalkDetail, error)
	Modify(ctx context.Context, userID, walkID int64, req models.WalkRequest) (*models.WalkDetail, error)
	Delete(ctx context.Context, userID, walkID int64) error
	ListAll(ctx context.Context, userID int64) ([]*models.WalkDetail, error)
	Detail(ctx context.Context, walkID int64) (*models.WalkDetail, error)
	IsDone(ctx context.Context, petID int64) (bool, error)
	WalkTimeSum(ctx context.Context, petID int64) (models.WalkTotal, error)
}

// AccessParser resolves an access token to its subject.
type AccessParser interface {
	ParseAccess(token string) (string, error)
}
