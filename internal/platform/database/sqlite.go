package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// MemoryDSN names an in-memory database. Connections using the same name
// share it.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

type logQueryHook struct {
	log *zap.Logger
}

func (*logQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *logQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	h.log.Debug("sql", zap.String("query", event.Query), zap.Duration("duration", time.Since(event.StartTime)), zap.Error(event.Err))
}

// OpenSQLite opens path through the sqliteshim driver. Queries are logged at
// debug level when log is non-nil.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// SQLite allows a single writer.
	sqldb.SetMaxOpenConns(1)
	if strings.Contains(path, "mode=memory") || strings.Contains(path, ":memory:") {
		sqldb.SetConnMaxLifetime(0)
		sqldb.SetMaxIdleConns(1)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if log != nil {
		db.AddQueryHook(&logQueryHook{log: log})
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}
	return db, nil
}
