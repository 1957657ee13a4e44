package services

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// searchPageSize is the fixed upstream page size for artist searches. We
// over-fetch regardless of the caller's limit so popularity filtering and
// seed exclusion still yield enough candidates.
const searchPageSize = 50

// ArtistSearch queries the catalog for artists matching a genre and applies
// the deterministic filtering rules. It never fails outward: any error beyond
// the single auth downgrade yields an empty list with a logged cause.
type ArtistSearch struct {
	resolver ports.CatalogResolver
	logger   *log.Logger
}

// NewArtistSearch constructs an ArtistSearch.
func NewArtistSearch(resolver ports.CatalogResolver, logger *log.Logger) *ArtistSearch {
	return &ArtistSearch{resolver: resolver, logger: logger}
}

// FindByGenre returns up to limit artists matching the genre, in the
// catalog's relevance order.
func (s *ArtistSearch) FindByGenre(ctx context.Context, genre, userToken string, limit int) []domain.Artist {
	return s.find(ctx, genre, userToken, "", 0, 100, limit)
}

// FindByGenreExcluding returns up to limit artists matching the genre whose
// popularity lies in [minPopularity, maxPopularity] inclusive, skipping the
// excluded artist id. Used for track-seeded recommendations.
func (s *ArtistSearch) FindByGenreExcluding(ctx context.Context, genre, userToken, excludeArtistID string, minPopularity, maxPopularity, limit int) []domain.Artist {
	return s.find(ctx, genre, userToken, excludeArtistID, minPopularity, maxPopularity, limit)
}

func (s *ArtistSearch) find(ctx context.Context, genre, userToken, excludeArtistID string, minPopularity, maxPopularity, limit int) []domain.Artist {
	var page []domain.Artist
	err := callCatalog(ctx, s.resolver, s.logger, userToken, func(cat ports.Catalog) error {
		var err error
		page, err = cat.SearchArtistsByGenre(ctx, genre, searchPageSize)
		return err
	})
	if err != nil {
		s.logger.Error("artist search failed", "genre", genre, "err", err)
		return []domain.Artist{}
	}

	// Walk the page in the order the catalog returned it; relevance order
	// is authoritative and is not re-sorted.
	results := make([]domain.Artist, 0, limit)
	for _, a := range page {
		if a.ID == "" {
			continue
		}
		if excludeArtistID != "" && a.ID == excludeArtistID {
			continue
		}
		if a.Popularity < minPopularity || a.Popularity > maxPopularity {
			continue
		}
		results = append(results, a)
		if len(results) >= limit {
			break
		}
	}
	return results
}
