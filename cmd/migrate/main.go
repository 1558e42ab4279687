package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"librarymanager/internal/config"
	"librarymanager/internal/platform/database"
)

func main() {
	config.LoadEnvFiles()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the Postgres schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres DSN (defaults to DB_DSN)")

	withDB := func(run func(db *sql.DB, dir string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			db, closeDB, err := openDB(cmd.Context(), resolveDSN(dsn))
			if err != nil {
				return err
			}
			defer closeDB()
			dir, err := useMigrations()
			if err != nil {
				return err
			}
			return run(db, dir)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(db *sql.DB, dir string) error {
				if err := goose.Up(db, dir); err != nil {
					return errors.Wrap(err, "apply migrations")
				}
				fmt.Println("Migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: withDB(func(db *sql.DB, dir string) error {
				if err := goose.Down(db, dir); err != nil {
					return errors.Wrap(err, "roll back migration")
				}
				fmt.Println("Migrations rolled back successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print migration status",
			RunE: withDB(func(db *sql.DB, dir string) error {
				return errors.Wrap(goose.Status(db, dir), "migration status")
			}),
		},
		&cobra.Command{
			Use:   "create NAME",
			Short: "Create a new SQL migration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				goose.SetBaseFS(nil)
				if err := goose.Create(nil, migrationsDir(), args[0], "sql"); err != nil {
					return errors.Wrap(err, "create migration")
				}
				fmt.Printf("Migration created: %s\n", args[0])
				return nil
			},
		},
	)
	return root
}

func resolveDSN(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		return v
	}
	return defaultDSN
}

// useMigrations points goose at the embedded migrations unless
// MIGRATIONS_DIR names a directory on disk.
func useMigrations() (string, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return "", errors.Wrap(err, "set goose dialect")
	}
	if os.Getenv("MIGRATIONS_DIR") != "" {
		goose.SetBaseFS(nil)
		return migrationsDir(), nil
	}
	goose.SetBaseFS(embeddedMigrations())
	return "migrations", nil
}

func openDB(ctx context.Context, dsn string) (*sql.DB, func(), error) {
	pool, err := database.OpenPostgres(ctx, dsn, pingTimeout)
	if err != nil {
		return nil, nil, err
	}
	db := stdlib.OpenDBFromPool(pool)
	return db, func() {
		_ = db.Close()
		pool.Close()
	}, nil
}
