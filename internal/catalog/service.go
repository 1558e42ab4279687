package catalog

import (
	"context"
	"strings"

	"librarymanager/internal/apperr"
	"librarymanager/internal/platform/googlebooks"
)

const (
	reasonQueryRequired = "search query required"
	reasonUpstream      = "book catalog unavailable"
)

type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Search queries the external catalog. maxResults outside 1..40 falls back
// to the default page size or the limit.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.New(apperr.KindValidation, reasonQueryRequired)
	}
	switch {
	case maxResults <= 0:
		maxResults = DefaultMaxResults
	case maxResults > MaxResultsLimit:
		maxResults = MaxResultsLimit
	}

	res, err := s.searcher.SearchVolumes(ctx, query, maxResults)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, reasonUpstream, err)
	}

	volumes := make([]Volume, 0, len(res.Items))
	for _, item := range res.Items {
		volumes = append(volumes, toVolume(item))
	}
	return volumes, nil
}

func toVolume(v googlebooks.Volume) Volume {
	info := v.VolumeInfo
	authors := info.Authors
	if authors == nil {
		authors = []string{}
	}
	thumbnail := info.ImageLinks.Thumbnail
	if thumbnail == "" {
		thumbnail = info.ImageLinks.SmallThumbnail
	}
	return Volume{
		ExternalID:  v.ID,
		Title:       info.Title,
		Authors:     authors,
		Description: info.Description,
		Thumbnail:   thumbnail,
		InfoLink:    info.InfoLink,
	}
}
