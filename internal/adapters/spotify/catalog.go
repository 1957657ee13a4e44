package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
)

// SearchArtistsByGenre runs a genre-scoped artist search and returns the
// results in the catalog's relevance order.
func (c *Client) SearchArtistsByGenre(ctx context.Context, genre string, limit int) ([]domain.Artist, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("genre:%q", genre))
	query.Set("type", "artist")
	query.Set("limit", strconv.Itoa(limit))

	var body struct {
		Artists struct {
			Items []artistObject `json:"items"`
		} `json:"artists"`
	}
	if err := c.get(ctx, "/search", query, &body); err != nil {
		return nil, err
	}

	artists := make([]domain.Artist, 0, len(body.Artists.Items))
	for _, a := range body.Artists.Items {
		artists = append(artists, a.toRecommended(genre))
	}
	return artists, nil
}

// SearchTracks runs a free-text track search.
func (c *Client) SearchTracks(ctx context.Context, q string, limit int) ([]domain.Track, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("type", "track")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("market", "US")

	var body struct {
		Tracks struct {
			Items []trackObject `json:"items"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, "/search", query, &body); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(body.Tracks.Items))
	for _, t := range body.Tracks.Items {
		tracks = append(tracks, t.toDomain())
	}
	return tracks, nil
}

// GetTrack fetches a single track by id.
func (c *Client) GetTrack(ctx context.Context, id string) (domain.Track, error) {
	var body trackObject
	if err := c.get(ctx, "/tracks/"+url.PathEscape(id), nil, &body); err != nil {
		return domain.Track{}, err
	}
	return body.toDomain(), nil
}

// GetArtist fetches the full artist profile.
func (c *Client) GetArtist(ctx context.Context, id string) (domain.ArtistProfile, error) {
	var body artistObject
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), nil, &body); err != nil {
		return domain.ArtistProfile{}, err
	}
	return body.toProfile(), nil
}

// GetAudioFeatures fetches the audio analysis attributes of a track.
func (c *Client) GetAudioFeatures(ctx context.Context, id string) (domain.AudioFeatures, error) {
	var body audioFeaturesObject
	if err := c.get(ctx, "/audio-features/"+url.PathEscape(id), nil, &body); err != nil {
		return domain.AudioFeatures{}, err
	}
	return domain.AudioFeatures{
		Danceability:     body.Danceability,
		Energy:           body.Energy,
		Valence:          body.Valence,
		Tempo:            body.Tempo,
		Instrumentalness: body.Instrumentalness,
		Acousticness:     body.Acousticness,
	}, nil
}

// GetSimilarTracks queries the recommendations endpoint seeded by track ids,
// constrained to a tempo band.
func (c *Client) GetSimilarTracks(ctx context.Context, seedIDs []string, targetTempo, minTempo, maxTempo float64, limit int) ([]domain.Track, error) {
	query := url.Values{}
	query.Set("seed_tracks", strings.Join(seedIDs, ","))
	query.Set("target_tempo", formatTempo(targetTempo))
	query.Set("min_tempo", formatTempo(minTempo))
	query.Set("max_tempo", formatTempo(maxTempo))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("market", "US")

	var body struct {
		Tracks []trackObject `json:"tracks"`
	}
	if err := c.get(ctx, "/recommendations", query, &body); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(body.Tracks))
	for _, t := range body.Tracks {
		tracks = append(tracks, t.toDomain())
	}
	return tracks, nil
}

// Me is the identity probe used to validate a user token.
func (c *Client) Me(ctx context.Context) error {
	return c.get(ctx, "/me", nil, nil)
}

func formatTempo(bpm float64) string {
	return strconv.FormatFloat(bpm, 'f', -1, 64)
}
