package savedbook

import (
	"errors"
	"time"
)

// Reading statuses a saved book can be in.
const (
	StatusWantToRead = "Want to Read"
	StatusReading    = "Reading"
	StatusCompleted  = "Completed"
)

// Statuses lists the accepted status values in display order.
var Statuses = []string{StatusWantToRead, StatusReading, StatusCompleted}

func ValidStatus(status string) bool {
	switch status {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return true
	default:
		return false
	}
}

// Store sentinels. Service code translates them into apperr kinds.
var (
	ErrNoRecord  = errors.New("saved book: no record")
	ErrDuplicate = errors.New("saved book: duplicate owner and external id")
)

// SavedBook is a catalog entry kept in an owner's personal library.
type SavedBook struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	ExternalID  string    `json:"externalId"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	InfoLink    string    `json:"infoLink"`
	Status      string    `json:"status"`
	Review      string    `json:"review"`
	SavedAt     time.Time `json:"savedAt"`
}

// CreateInput carries the catalog fields of a book being saved.
type CreateInput struct {
	ExternalID  string
	Title       string
	Authors     []string
	Description string
	Thumbnail   string
	InfoLink    string
}

// UpdateInput holds the mutable fields. A nil field is left untouched; an
// empty Status is treated the same as nil.
type UpdateInput struct {
	Status *string
	Review *string
}

// Patch is the set of columns a store applies on update.
type Patch struct {
	Status *string
	Review *string
}

func (p Patch) Empty() bool {
	return p.Status == nil && p.Review == nil
}
