package savedbook

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"librarymanager/internal/apperr"
	"librarymanager/internal/authn"
)

const (
	reasonRequiredField = "required field missing"
	reasonInvalidStatus = "invalid status value"
	reasonAlreadySaved  = "already saved"
	reasonNotFound      = "book not found"
	reasonStorage       = "storage unavailable"
	reasonNoOwner       = "no caller identity"
)

// Service implements the owner-scoped saved book operations. It holds no
// mutable state and is safe to share across requests.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// List returns the caller's saved books in storage order.
func (s *Service) List(ctx context.Context, caller authn.Identity) ([]SavedBook, error) {
	if err := requireOwner(caller); err != nil {
		return nil, err
	}
	books, err := s.store.FindAllByOwner(ctx, caller.OwnerID)
	if err != nil {
		return nil, storageError(err)
	}
	if books == nil {
		books = []SavedBook{}
	}
	return books, nil
}

// Create saves a catalog entry for the caller. Saving the same external id
// twice for one owner fails with a conflict.
func (s *Service) Create(ctx context.Context, caller authn.Identity, in CreateInput) (SavedBook, error) {
	if err := requireOwner(caller); err != nil {
		return SavedBook{}, err
	}
	if strings.TrimSpace(in.ExternalID) == "" || strings.TrimSpace(in.Title) == "" {
		return SavedBook{}, apperr.New(apperr.KindValidation, reasonRequiredField)
	}

	_, err := s.store.FindOneByOwnerAndExternalID(ctx, caller.OwnerID, in.ExternalID)
	switch {
	case err == nil:
		return SavedBook{}, apperr.New(apperr.KindConflict, reasonAlreadySaved)
	case !errors.Is(err, ErrNoRecord):
		return SavedBook{}, storageError(err)
	}

	authors := in.Authors
	if authors == nil {
		authors = []string{}
	}
	book := SavedBook{
		ID:          s.newID(),
		OwnerID:     caller.OwnerID,
		ExternalID:  in.ExternalID,
		Title:       in.Title,
		Authors:     authors,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		InfoLink:    in.InfoLink,
		Status:      StatusWantToRead,
		SavedAt:     s.now(),
	}

	stored, err := s.store.Insert(ctx, book)
	if err != nil {
		// The unique index only fires when a concurrent save won the race.
		if errors.Is(err, ErrDuplicate) {
			return SavedBook{}, apperr.New(apperr.KindConflict, reasonAlreadySaved)
		}
		return SavedBook{}, storageError(err)
	}
	return stored, nil
}

// Update changes status and/or review of one of the caller's books. A book
// owned by someone else is reported exactly like a missing one.
func (s *Service) Update(ctx context.Context, caller authn.Identity, bookID string, in UpdateInput) (SavedBook, error) {
	if err := requireOwner(caller); err != nil {
		return SavedBook{}, err
	}

	current, err := s.store.FindOneByIDAndOwner(ctx, bookID, caller.OwnerID)
	if err != nil {
		return SavedBook{}, lookupError(err)
	}

	var patch Patch
	if in.Status != nil && *in.Status != "" {
		if !ValidStatus(*in.Status) {
			return SavedBook{}, apperr.New(apperr.KindValidation, reasonInvalidStatus)
		}
		patch.Status = in.Status
	}
	if in.Review != nil {
		patch.Review = in.Review
	}
	if patch.Empty() {
		return current, nil
	}

	updated, err := s.store.UpdateByIDAndOwner(ctx, bookID, caller.OwnerID, patch)
	if err != nil {
		return SavedBook{}, lookupError(err)
	}
	return updated, nil
}

// Delete removes one of the caller's books. Deleting an id that is gone, or
// that belongs to another owner, fails with not found.
func (s *Service) Delete(ctx context.Context, caller authn.Identity, bookID string) error {
	if err := requireOwner(caller); err != nil {
		return err
	}
	if err := s.store.DeleteByIDAndOwner(ctx, bookID, caller.OwnerID); err != nil {
		return lookupError(err)
	}
	return nil
}

func requireOwner(caller authn.Identity) error {
	if caller.OwnerID == "" {
		return apperr.New(apperr.KindUnauthenticated, reasonNoOwner)
	}
	return nil
}

func lookupError(err error) error {
	if errors.Is(err, ErrNoRecord) {
		return apperr.New(apperr.KindNotFound, reasonNotFound)
	}
	return storageError(err)
}

func storageError(err error) error {
	return apperr.Wrap(apperr.KindStorage, reasonStorage, err)
}
