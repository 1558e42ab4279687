package savedbook

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_store_test.go -package=savedbook

// Store persists saved books. It enforces no authorization: callers must
// scope every lookup, update and delete by owner.
//
// Implementations must be safe for concurrent use. FindOne*, UpdateByIDAndOwner
// and DeleteByIDAndOwner return ErrNoRecord when nothing matches; Insert returns
// ErrDuplicate when the (owner, external id) pair already exists.
type Store interface {
	FindAllByOwner(ctx context.Context, ownerID string) ([]SavedBook, error)
	FindOneByOwnerAndExternalID(ctx context.Context, ownerID, externalID string) (SavedBook, error)
	FindOneByIDAndOwner(ctx context.Context, id, ownerID string) (SavedBook, error)
	Insert(ctx context.Context, book SavedBook) (SavedBook, error)
	UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch Patch) (SavedBook, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
	Ping(ctx context.Context) error
}
