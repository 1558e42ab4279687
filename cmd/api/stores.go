package main

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"librarymanager/internal/config"
	"librarymanager/internal/platform/database"
	"librarymanager/internal/savedbook"
	"librarymanager/internal/user"
)

type stores struct {
	books savedbook.Store
	users user.Repository
	close func()
}

// openStores connects the configured backend. SQLite databases get their
// schema created on open; Postgres relies on cmd/migrate.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		var queryLog *zap.Logger
		if cfg.IsDevelopment() {
			queryLog = log.Named("sql")
		}
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, queryLog)
		if err != nil {
			return nil, err
		}
		books := savedbook.NewSQLiteRepo(db, cfg.DBTimeout)
		users := user.NewSQLiteRepo(db, cfg.DBTimeout)
		if err := books.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := users.CreateSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("sqlite database ready", zap.String("path", cfg.SQLitePath))
		return &stores{books: books, users: users, close: func() { _ = db.Close() }}, nil

	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		log.Info("database connection OK", zap.String("dsn", database.RedactDSN(cfg.DBDSN)))
		return &stores{
			books: savedbook.NewPostgresRepo(pool, cfg.DBTimeout),
			users: user.NewPostgresRepo(pool, cfg.DBTimeout),
			close: pool.Close,
		}, nil

	default:
		return nil, errors.Wrapf(config.ErrUnknownDriver, "got %q", cfg.DBDriver)
	}
}
