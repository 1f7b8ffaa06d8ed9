// Package admin implements petcarectl, the operator CLI of the petcare
// server. It talks to PostgreSQL directly and shares the server's
// repositories and services.
package admin

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/server/config"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/dmitrijs2005/petcare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petcare/internal/server/services"
	"github.com/dmitrijs2005/petcare/internal/server/shared/db"
	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// Seams for tests.
var (
	openDB         = db.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
	now            = time.Now
)

// App creates the CLI application.
func App() *cli.App {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	return &cli.App{
		Name:    "petcarectl",
		Usage:   "petcare administration tool",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dsn",
				Aliases: []string{"d"},
				Usage:   "PostgreSQL connection string",
				EnvVars: []string{config.EnvPrefix + "DATABASE_DSN"},
				Value:   defaults.DatabaseDSN,
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			sweepTokensCommand(),
			createUserCommand(),
			genSecretCommand(),
		},
	}
}

// withDB opens the database for the duration of one command.
func withDB(c *cli.Context, fn func(ctx context.Context, conn *sql.DB) error) error {
	ctx := c.Context
	conn, err := openDB(ctx, c.String("dsn"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer conn.Close()
	return fn(ctx, conn)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending database migrations",
		Action: func(c *cli.Context) error {
			return withDB(c, func(ctx context.Context, conn *sql.DB) error {
				if err := newRepoManager().RunMigrations(ctx, conn); err != nil {
					return cli.Exit(fmt.Sprintf("migration error: %v", err), 1)
				}
				fmt.Fprintln(c.App.Writer, "migrations applied")
				return nil
			})
		},
	}
}

func sweepTokensCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep-tokens",
		Usage: "delete expired refresh tokens once",
		Action: func(c *cli.Context) error {
			return withDB(c, func(ctx context.Context, conn *sql.DB) error {
				us := services.NewUserService(conn, newRepoManager(), nil)
				n, err := us.SweepExpiredTokens(ctx, now())
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				fmt.Fprintf(c.App.Writer, "removed %d expired refresh tokens\n", n)
				return nil
			})
		},
	}
}

func createUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-user",
		Usage: "register an account; the password is read from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "member-id", Usage: "login id, prompted for when empty"},
			&cli.StringFlag{Name: "nickname", Usage: "display name, prompted for when empty"},
			&cli.StringFlag{Name: "email", Usage: "contact email"},
		},
		Action: func(c *cli.Context) error {
			reader := bufio.NewReader(c.App.Reader)
			memberID, err := flagOrPrompt(c, reader, "member-id", "Enter member id:")
			if err != nil {
				return err
			}
			nickname, err := flagOrPrompt(c, reader, "nickname", "Enter nickname:")
			if err != nil {
				return err
			}

			password, err := GetPassword(c.App.Writer, "Enter password: ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("read password: %v", err), 1)
			}
			defer common.WipeByteArray(password)

			confirm, err := GetPassword(c.App.Writer, "Repeat password: ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("read password: %v", err), 1)
			}
			defer common.WipeByteArray(confirm)

			if len(password) == 0 {
				return cli.Exit("password must not be empty", 1)
			}
			if !bytes.Equal(password, confirm) {
				return cli.Exit("passwords do not match", 1)
			}

			req := models.UserRequest{
				MemberID: memberID,
				Nickname: nickname,
				Email:    c.String("email"),
				Password: string(password),
			}
			return withDB(c, func(ctx context.Context, conn *sql.DB) error {
				u, err := services.NewUserService(conn, newRepoManager(), nil).Register(ctx, req)
				if errors.Is(err, common.ErrDuplicate) {
					return cli.Exit(err.Error(), 2)
				}
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				fmt.Fprintf(c.App.Writer, "created user %d (%s)\n", u.ID, u.MemberID)
				return nil
			})
		},
	}
}

func genSecretCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen-secret",
		Usage: "print a random hex secret suitable for PETCARE_SECRET_KEY",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "bytes", Value: 32, Usage: "secret length in bytes"},
		},
		Action: func(c *cli.Context) error {
			size := c.Int("bytes")
			if size < 16 {
				return cli.Exit("secret must be at least 16 bytes", 1)
			}
			s, err := common.MakeRandHexString(size)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Fprintln(c.App.Writer, s)
			return nil
		},
	}
}

// flagOrPrompt returns the value of flag name, asking on reader when unset.
func flagOrPrompt(c *cli.Context, reader *bufio.Reader, name, prompt string) (string, error) {
	if v := c.String(name); v != "" {
		return v, nil
	}
	v, err := GetSimpleText(reader, prompt, c.App.Writer)
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("read %s: %v", name, err), 1)
	}
	if v == "" {
		return "", cli.Exit(name+" must not be empty", 1)
	}
	return v, nil
}
