package catalog

import (
	"context"

	"librarymanager/internal/platform/googlebooks"
)

//go:generate mockgen -source=ports.go -destination=mock_searcher_test.go -package=catalog

// Searcher is satisfied by *googlebooks.Client.
type Searcher interface {
	SearchVolumes(ctx context.Context, query string, maxResults int) (*googlebooks.VolumesResponse, error)
}
