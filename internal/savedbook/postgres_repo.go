package savedbook

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const (
	tableSavedBooks      = "saved_books"
	uniqueViolationCode  = "23505"
	ownerExternalIDIndex = "saved_books_owner_external_id_key"
)

var savedBookColumns = []any{
	"id", "owner_id", "external_id", "title", "authors", "description",
	"thumbnail", "info_link", "status", "review", "saved_at",
}

var pg = goqu.Dialect("postgres")

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}

func (r *PostgresRepo) FindAllByOwner(ctx context.Context, ownerID string) ([]SavedBook, error) {
	query, args, err := pg.From(tableSavedBooks).Prepared(true).
		Select(savedBookColumns...).
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("saved_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build saved books query")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query saved books")
	}
	defer rows.Close()

	books := []SavedBook{}
	for rows.Next() {
		b, err := scanSavedBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, errors.Wrap(rows.Err(), "iterate saved books")
}

func (r *PostgresRepo) FindOneByOwnerAndExternalID(ctx context.Context, ownerID, externalID string) (SavedBook, error) {
	return r.findOne(ctx, goqu.Ex{"owner_id": ownerID, "external_id": externalID})
}

func (r *PostgresRepo) FindOneByIDAndOwner(ctx context.Context, id, ownerID string) (SavedBook, error) {
	return r.findOne(ctx, goqu.Ex{"id": id, "owner_id": ownerID})
}

func (r *PostgresRepo) findOne(ctx context.Context, where goqu.Ex) (SavedBook, error) {
	query, args, err := pg.From(tableSavedBooks).Prepared(true).
		Select(savedBookColumns...).
		Where(where).
		Limit(1).
		ToSQL()
	if err != nil {
		return SavedBook{}, errors.Wrap(err, "build saved book query")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanSavedBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedBook{}, ErrNoRecord
		}
		return SavedBook{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, book SavedBook) (SavedBook, error) {
	const insertSQL = `
		INSERT INTO saved_books (id, owner_id, external_id, title, authors, description,
		                         thumbnail, info_link, status, review, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, owner_id, external_id, title, authors, description,
		          thumbnail, info_link, status, review, saved_at
	`
	authors := book.Authors
	if authors == nil {
		authors = []string{}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	stored, err := scanSavedBook(r.db.QueryRow(timeoutCtx, insertSQL,
		book.ID, book.OwnerID, book.ExternalID, book.Title, authors, book.Description,
		book.Thumbnail, book.InfoLink, book.Status, book.Review, book.SavedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == ownerExternalIDIndex {
			return SavedBook{}, ErrDuplicate
		}
		return SavedBook{}, err
	}
	return stored, nil
}

func (r *PostgresRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch Patch) (SavedBook, error) {
	if patch.Empty() {
		return r.FindOneByIDAndOwner(ctx, id, ownerID)
	}

	set := goqu.Record{}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Review != nil {
		set["review"] = *patch.Review
	}

	query, args, err := pg.Update(tableSavedBooks).Prepared(true).
		Set(set).
		Where(goqu.Ex{"id": id, "owner_id": ownerID}).
		Returning(savedBookColumns...).
		ToSQL()
	if err != nil {
		return SavedBook{}, errors.Wrap(err, "build saved book update")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanSavedBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedBook{}, ErrNoRecord
		}
		return SavedBook{}, err
	}
	return b, nil
}

func (r *PostgresRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	query, args, err := pg.Delete(tableSavedBooks).Prepared(true).
		Where(goqu.Ex{"id": id, "owner_id": ownerID}).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build saved book delete")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return errors.Wrap(err, "delete saved book")
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRecord
	}
	return nil
}

func scanSavedBook(row pgx.Row) (SavedBook, error) {
	var b SavedBook
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.ExternalID, &b.Title, &b.Authors, &b.Description,
		&b.Thumbnail, &b.InfoLink, &b.Status, &b.Review, &b.SavedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavedBook{}, err
		}
		return SavedBook{}, errors.Wrap(err, "scan saved book")
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}
	return b, nil
}
