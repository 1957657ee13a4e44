package services

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const (
	promptArtistLimit = 6
	seedArtistLimit   = 5
	seedMinPopularity = 25
	seedMaxPopularity = 75

	tempoBandBPM    = 10.0
	tempoFetchLimit = 20
	tempoKeepLimit  = 5

	// The similar-tracks endpoint requires at least one seed; a fixed,
	// well-known track keeps the tempo band the only moving part.
	tempoSeedTrackID = "4iV5W9uYEdYUVa79Axb7Rh"
)

// PromptRecommendation is the result of deriving artists from a free-text
// mood description.
type PromptRecommendation struct {
	Genre    string          `json:"genre"`
	Artists  []domain.Artist `json:"artists"`
	Selected domain.Artist   `json:"selected"`
}

// SeedArtistRecommendation is the result of expanding a seed track into
// artists sharing its primary artist's top genre.
type SeedArtistRecommendation struct {
	Songs       []domain.Artist `json:"songs"`
	Genre       string          `json:"genre"`
	SeedTrackID string          `json:"seed_song_id"`
}

// TempoRecommendation is the result of matching tracks to a seed track's
// tempo.
type TempoRecommendation struct {
	Tempo  float64        `json:"tempo"`
	Tracks []domain.Track `json:"songs"`
}

// Recommender is the top-level orchestration engine. It composes the genre
// classifier, artist search, catalog auth resolution and the tempo cache
// into the three public recommendation operations. It is stateless per call
// apart from the injected caches, so operations may run concurrently.
type Recommender struct {
	classifier *GenreClassifier
	search     *ArtistSearch
	resolver   ports.CatalogResolver
	cache      *TempoCache
	logger     *log.Logger
}

// NewRecommender constructs a Recommender.
func NewRecommender(classifier *GenreClassifier, search *ArtistSearch, resolver ports.CatalogResolver, cache *TempoCache, logger *log.Logger) *Recommender {
	return &Recommender{
		classifier: classifier,
		search:     search,
		resolver:   resolver,
		cache:      cache,
		logger:     logger,
	}
}

// RecommendByPrompt derives a genre from the prompt and returns up to six
// artists for it, with the first marked as selected.
func (r *Recommender) RecommendByPrompt(ctx context.Context, prompt, userToken string) (PromptRecommendation, error) {
	genre, ok := r.classifier.Classify(ctx, prompt)
	if !ok {
		return PromptRecommendation{}, domain.NoMatchf("could not derive genre from prompt")
	}
	r.logger.Info("classified prompt", "genre", genre)

	artists := r.search.FindByGenre(ctx, genre, userToken, promptArtistLimit)
	if len(artists) == 0 {
		return PromptRecommendation{}, domain.NoMatchf("no artists found for genre %q", genre)
	}

	return PromptRecommendation{
		Genre:    genre,
		Artists:  artists,
		Selected: artists[0],
	}, nil
}

// RecommendBySeedArtists expands a seed track into artists that share its
// primary artist's top genre, keeping only moderately popular candidates and
// excluding the seed artist itself.
func (r *Recommender) RecommendBySeedArtists(ctx context.Context, trackID, userToken string) (SeedArtistRecommendation, error) {
	var track domain.Track
	err := callCatalog(ctx, r.resolver, r.logger, userToken, func(cat ports.Catalog) error {
		var err error
		track, err = cat.GetTrack(ctx, trackID)
		return err
	})
	if err != nil {
		return SeedArtistRecommendation{}, err
	}
	if track.ArtistID == "" {
		return SeedArtistRecommendation{}, domain.NoMatchf("track %s has no artists", trackID)
	}

	var profile domain.ArtistProfile
	err = callCatalog(ctx, r.resolver, r.logger, userToken, func(cat ports.Catalog) error {
		var err error
		profile, err = cat.GetArtist(ctx, track.ArtistID)
		return err
	})
	if err != nil {
		return SeedArtistRecommendation{}, err
	}
	r.logger.Info("seed artist resolved", "artist", profile.Name, "popularity", profile.Popularity, "genres", profile.Genres)

	if len(profile.Genres) == 0 {
		return SeedArtistRecommendation{}, domain.NoMatchf("seed artist %q has no genres", profile.Name)
	}
	topGenre := profile.Genres[0]

	songs := r.search.FindByGenreExcluding(ctx, topGenre, userToken, profile.ID, seedMinPopularity, seedMaxPopularity, seedArtistLimit)
	if len(songs) == 0 {
		return SeedArtistRecommendation{}, domain.NoMatchf("no artists found in genre %q within popularity %d-%d", topGenre, seedMinPopularity, seedMaxPopularity)
	}

	return SeedArtistRecommendation{
		Songs:       songs,
		Genre:       topGenre,
		SeedTrackID: trackID,
	}, nil
}

// RecommendByTempo resolves the seed track's tempo and returns up to five
// tracks inside a +-10 BPM band around it.
func (r *Recommender) RecommendByTempo(ctx context.Context, trackID, userToken string) (TempoRecommendation, error) {
	tempo, err := r.ResolveTempo(ctx, trackID, userToken)
	if err != nil {
		return TempoRecommendation{}, err
	}

	minTempo := tempo - tempoBandBPM
	if minTempo < 0 {
		minTempo = 0
	}

	var tracks []domain.Track
	err = callCatalog(ctx, r.resolver, r.logger, userToken, func(cat ports.Catalog) error {
		var err error
		tracks, err = cat.GetSimilarTracks(ctx, []string{tempoSeedTrackID}, tempo, minTempo, tempo+tempoBandBPM, tempoFetchLimit)
		return err
	})
	if err != nil {
		return TempoRecommendation{}, err
	}

	if len(tracks) > tempoKeepLimit {
		tracks = tracks[:tempoKeepLimit]
	}
	r.logger.Info("tempo recommendations ready", "tempo", tempo, "count", len(tracks))

	return TempoRecommendation{Tempo: tempo, Tracks: tracks}, nil
}

// ResolveTempo returns the tempo of a track, consulting the cache before the
// catalog. A cache miss verifies the track exists, fetches its audio
// features and stores the tempo before returning.
func (r *Recommender) ResolveTempo(ctx context.Context, trackID, userToken string) (float64, error) {
	if tempo, ok := r.cache.Get(trackID); ok {
		r.logger.Debug("tempo cache hit", "track", trackID, "tempo", tempo)
		return tempo, nil
	}

	var features domain.AudioFeatures
	err := callCatalog(ctx, r.resolver, r.logger, userToken, func(cat ports.Catalog) error {
		if _, err := cat.GetTrack(ctx, trackID); err != nil {
			return err
		}
		var err error
		features, err = cat.GetAudioFeatures(ctx, trackID)
		return err
	})
	if err != nil {
		return 0, err
	}
	if features.Tempo <= 0 {
		return 0, domain.NoMatchf("no tempo available for track %s", trackID)
	}

	tempo := r.cache.Put(trackID, features.Tempo)
	r.logger.Debug("tempo resolved", "track", trackID, "tempo", tempo)
	return tempo, nil
}

// SearchTracks runs a free-text track search under application credentials.
func (r *Recommender) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	session := r.resolver.Resolve(ctx, "")
	return session.Catalog.SearchTracks(ctx, query, limit)
}
