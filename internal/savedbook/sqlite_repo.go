package savedbook

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type savedBookRow struct {
	bun.BaseModel `bun:"table:saved_books"`

	ID          string    `bun:"id,pk"`
	OwnerID     string    `bun:"owner_id,notnull"`
	ExternalID  string    `bun:"external_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Authors     []string  `bun:"authors,notnull"`
	Description string    `bun:"description,notnull"`
	Thumbnail   string    `bun:"thumbnail,notnull"`
	InfoLink    string    `bun:"info_link,notnull"`
	Status      string    `bun:"status,notnull"`
	Review      string    `bun:"review,notnull"`
	SavedAt     time.Time `bun:"saved_at,notnull"`
}

func (r savedBookRow) toSavedBook() SavedBook {
	authors := r.Authors
	if authors == nil {
		authors = []string{}
	}
	return SavedBook{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		ExternalID:  r.ExternalID,
		Title:       r.Title,
		Authors:     authors,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		InfoLink:    r.InfoLink,
		Status:      r.Status,
		Review:      r.Review,
		SavedAt:     r.SavedAt.UTC(),
	}
}

func rowFromSavedBook(b SavedBook) savedBookRow {
	return savedBookRow{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		ExternalID:  b.ExternalID,
		Title:       b.Title,
		Authors:     b.Authors,
		Description: b.Description,
		Thumbnail:   b.Thumbnail,
		InfoLink:    b.InfoLink,
		Status:      b.Status,
		Review:      b.Review,
		SavedAt:     b.SavedAt,
	}
}

// SQLiteRepo is the embedded Store used for single-binary deployments.
type SQLiteRepo struct {
	db      *bun.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *bun.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

// CreateSchema creates the saved_books table and its owner indexes.
func (r *SQLiteRepo) CreateSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*savedBookRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return errors.Wrap(err, "create saved_books table")
	}
	_, err := r.db.NewCreateIndex().
		Model((*savedBookRow)(nil)).
		Index(ownerExternalIDIndex).
		Unique().
		IfNotExists().
		Column("owner_id", "external_id").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "create saved_books unique index")
	}
	_, err = r.db.NewCreateIndex().
		Model((*savedBookRow)(nil)).
		Index("saved_books_owner_saved_at_idx").
		IfNotExists().
		Column("owner_id", "saved_at", "id").
		Exec(ctx)
	return errors.Wrap(err, "create saved_books owner index")
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.PingContext(timeoutCtx)
}

func (r *SQLiteRepo) FindAllByOwner(ctx context.Context, ownerID string) ([]SavedBook, error) {
	var rows []savedBookRow
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Order("saved_at ASC", "id ASC").
		Scan(timeoutCtx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "query saved books")
	}

	books := make([]SavedBook, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.toSavedBook())
	}
	return books, nil
}

func (r *SQLiteRepo) FindOneByOwnerAndExternalID(ctx context.Context, ownerID, externalID string) (SavedBook, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.findOne(timeoutCtx, r.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("owner_id = ?", ownerID).Where("external_id = ?", externalID)
	})
}

func (r *SQLiteRepo) FindOneByIDAndOwner(ctx context.Context, id, ownerID string) (SavedBook, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.findOne(timeoutCtx, r.db, byIDAndOwner(id, ownerID))
}

func byIDAndOwner(id, ownerID string) func(q *bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id).Where("owner_id = ?", ownerID)
	}
}

func (r *SQLiteRepo) findOne(ctx context.Context, db bun.IDB, apply func(*bun.SelectQuery) *bun.SelectQuery) (SavedBook, error) {
	var row savedBookRow
	err := apply(db.NewSelect().Model(&row)).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedBook{}, ErrNoRecord
		}
		return SavedBook{}, errors.Wrap(err, "query saved book")
	}
	return row.toSavedBook(), nil
}

func (r *SQLiteRepo) Insert(ctx context.Context, book SavedBook) (SavedBook, error) {
	row := rowFromSavedBook(book)
	if row.Authors == nil {
		row.Authors = []string{}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.NewInsert().Model(&row).Exec(timeoutCtx); err != nil {
		if isSQLiteUniqueViolation(err) {
			return SavedBook{}, ErrDuplicate
		}
		return SavedBook{}, errors.Wrap(err, "insert saved book")
	}
	return row.toSavedBook(), nil
}

func (r *SQLiteRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch Patch) (SavedBook, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var out SavedBook
	err := r.db.RunInTx(timeoutCtx, nil, func(ctx context.Context, tx bun.Tx) error {
		if !patch.Empty() {
			q := tx.NewUpdate().
				Model((*savedBookRow)(nil)).
				Where("id = ?", id).
				Where("owner_id = ?", ownerID)
			if patch.Status != nil {
				q = q.Set("status = ?", *patch.Status)
			}
			if patch.Review != nil {
				q = q.Set("review = ?", *patch.Review)
			}
			res, err := q.Exec(ctx)
			if err != nil {
				return errors.Wrap(err, "update saved book")
			}
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return ErrNoRecord
			}
		}

		b, err := r.findOne(ctx, tx, byIDAndOwner(id, ownerID))
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return SavedBook{}, err
	}
	return out, nil
}

func (r *SQLiteRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.NewDelete().
		Model((*savedBookRow)(nil)).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(timeoutCtx)
	if err != nil {
		return errors.Wrap(err, "delete saved book")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete saved book rows affected")
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
