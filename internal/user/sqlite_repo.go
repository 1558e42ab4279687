package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID           string    `bun:"id,pk"`
	Username     string    `bun:"username,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

func (r userRow) toUser() User {
	return User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type SQLiteRepo struct {
	db      *bun.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *bun.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

// CreateSchema creates the users table.
func (r *SQLiteRepo) CreateSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().Model((*userRow)(nil)).IfNotExists().Exec(ctx)
	return errors.Wrap(err, "create users table")
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Create(ctx context.Context, u User) (User, error) {
	row := userRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.NewInsert().Model(&row).Exec(timeoutCtx); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return User{}, ErrAlreadyExists
		}
		return User{}, errors.Wrap(err, "insert user")
	}
	return row.toUser(), nil
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *SQLiteRepo) getOne(ctx context.Context, where string, arg string) (User, error) {
	var row userRow
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.NewSelect().Model(&row).Where(where, arg).Limit(1).Scan(timeoutCtx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, errors.Wrap(err, "query user")
	}
	return row.toUser(), nil
}
