// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/petcare/internal/dbx"
	"github.com/dmitrijs2005/petcare/internal/server/migrations"
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
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Pets(db dbx.DBTX) pets.Repository {
	return pets.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Kinds(db dbx.DBTX) kinds.Repository {
	return kinds.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) BoardTypes(db dbx.DBTX) boardtypes.Repository {
	return boardtypes.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Boards(db dbx.DBTX) boards.Repository {
	return boards.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Journals(db dbx.DBTX) journals.Repository {
	return journals.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Walks(db dbx.DBTX) walks.Repository {
	return walks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) WalkPets(db dbx.DBTX) walkpets.Repository {
	return walkpets.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
