package ports

import (
	"context"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// CredentialKind tags which credential variant produced an active catalog
// session. The downgrade-and-retry policy branches on this tag, never on
// client identity.
type CredentialKind string

const (
	// CredentialApp is the service-level application credential, usable
	// without end-user consent and with reduced scope.
	CredentialApp CredentialKind = "app"
	// CredentialUser is an end-user bearer token with higher-privilege
	// access.
	CredentialUser CredentialKind = "user"
)

// Catalog is the external music catalog capability. Every method maps
// upstream failures onto the domain error taxonomy.
type Catalog interface {
	// SearchArtistsByGenre returns artists matching a genre label in the
	// catalog's relevance order, projected into the shared Artist shape
	// with the queried genre as the label.
	SearchArtistsByGenre(ctx context.Context, genre string, limit int) ([]domain.Artist, error)

	// SearchTracks returns tracks matching a free-text query.
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error)

	// GetTrack fetches a single track by id.
	GetTrack(ctx context.Context, id string) (domain.Track, error)

	// GetArtist fetches the full artist profile, including genre tags.
	GetArtist(ctx context.Context, id string) (domain.ArtistProfile, error)

	// GetAudioFeatures fetches the audio analysis attributes of a track.
	GetAudioFeatures(ctx context.Context, id string) (domain.AudioFeatures, error)

	// GetSimilarTracks queries the catalog's recommendation endpoint seeded
	// by track ids, constrained to a tempo band.
	GetSimilarTracks(ctx context.Context, seedIDs []string, targetTempo, minTempo, maxTempo float64, limit int) ([]domain.Track, error)

	// Me is a lightweight identity probe used to validate a user token.
	Me(ctx context.Context) error
}

// CatalogSession pairs an active catalog client with the credential tag
// that produced it.
type CatalogSession struct {
	Catalog Catalog
	Kind    CredentialKind
}

// CatalogResolver decides which credential backs a catalog call. Resolving
// never fails outward: an unusable user token degrades to the application
// credential session.
type CatalogResolver interface {
	Resolve(ctx context.Context, userToken string) CatalogSession
}
