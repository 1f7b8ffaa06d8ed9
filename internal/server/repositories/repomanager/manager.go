package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/boards"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/boardtypes"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/comments"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/journals"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/kinds"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/pets"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/users"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/walkpets"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/walks"
)

// RepositoryManager hands out repositories bound to a DBTX, so a service can
// run several of them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Pets(db dbx.DBTX) pets.Repository
	Kinds(db dbx.DBTX) kinds.Repository
	BoardTypes(db dbx.DBTX) boardtypes.Repository
	Boards(db dbx.DBTX) boards.Repository
	Comments(db dbx.DBTX) comments.Repository
	Journals(db dbx.DBTX) journals.Repository
	Walks(db dbx.DBTX) walks.Repository
	WalkPets(db dbx.DBTX) walkpets.Repository
}
