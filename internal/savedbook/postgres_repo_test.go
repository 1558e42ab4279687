package savedbook

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "librarymanager/db"
	"librarymanager/internal/apperr"
	"librarymanager/internal/authn"
)

func setupPostgresRepo(t *testing.T) *PostgresRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Skipping test: cannot ping test database: %v", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "migrations"))
	_ = sqlDB.Close()

	_, err = pool.Exec(ctx, "TRUNCATE saved_books")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgresRepo(pool, 3*time.Second)
}

func TestPostgresRepo_CRUD(t *testing.T) {
	repo := setupPostgresRepo(t)
	ctx := context.Background()

	book := SavedBook{
		ID:         "b1",
		OwnerID:    "u1",
		ExternalID: "gb-42",
		Title:      "Dune",
		Status:     StatusWantToRead,
		SavedAt:    time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
	stored, err := repo.Insert(ctx, book)
	require.NoError(t, err)
	assert.Equal(t, []string{}, stored.Authors)

	_, err = repo.Insert(ctx, book)
	assert.ErrorIs(t, err, ErrDuplicate)

	updated, err := repo.UpdateByIDAndOwner(ctx, "b1", "u1", Patch{Status: strPtr(StatusReading)})
	require.NoError(t, err)
	assert.Equal(t, StatusReading, updated.Status)

	_, err = repo.UpdateByIDAndOwner(ctx, "b1", "u2", Patch{Status: strPtr(StatusCompleted)})
	assert.ErrorIs(t, err, ErrNoRecord)

	books, err := repo.FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, "b1", "u2"), ErrNoRecord)
	require.NoError(t, repo.DeleteByIDAndOwner(ctx, "b1", "u1"))
	_, err = repo.FindOneByIDAndOwner(ctx, "b1", "u1")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestPostgresRepo_ServiceScenario(t *testing.T) {
	svc := NewService(setupPostgresRepo(t))
	ctx := context.Background()
	u1 := authn.Identity{OwnerID: "u1"}

	created, err := svc.Create(ctx, u1, CreateInput{ExternalID: "gb-42", Title: "Dune"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, u1, created.ID, UpdateInput{Status: strPtr("Finished")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Update(ctx, authn.Identity{OwnerID: "u2"}, created.ID, UpdateInput{Review: strPtr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Create(ctx, u1, CreateInput{ExternalID: "gb-42", Title: "Dune"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
