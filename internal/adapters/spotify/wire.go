package spotify

import "github.com/vibecheck-labs/vibecheck/internal/core/domain"

// Wire types mirror the Spotify Web API response shapes. Mapping into
// domain types happens here and nowhere else.

type imageObject struct {
	URL string `json:"url"`
}

type artistObject struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Genres     []string      `json:"genres"`
	Popularity int           `json:"popularity"`
	Images     []imageObject `json:"images"`
}

type albumObject struct {
	Name   string        `json:"name"`
	Images []imageObject `json:"images"`
}

type trackObject struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Artists    []artistObject `json:"artists"`
	Album      albumObject    `json:"album"`
	Popularity int            `json:"popularity"`
}

type audioFeaturesObject struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Instrumentalness float64 `json:"instrumentalness"`
	Acousticness     float64 `json:"acousticness"`
}

// toDomain flattens a wire track to the domain shape: primary artist only,
// first album image or none.
func (t trackObject) toDomain() domain.Track {
	dt := domain.Track{
		ID:         t.ID,
		Name:       t.Name,
		Album:      t.Album.Name,
		Popularity: t.Popularity,
	}
	if len(t.Artists) > 0 {
		dt.Artist = t.Artists[0].Name
		dt.ArtistID = t.Artists[0].ID
	}
	if len(t.Album.Images) > 0 {
		dt.ImageURL = t.Album.Images[0].URL
	}
	return dt
}

// toRecommended projects a wire artist into the shared recommendation shape,
// reusing the queried genre as the label and leaving the album empty for
// shape compatibility with track results.
func (a artistObject) toRecommended(genre string) domain.Artist {
	da := domain.Artist{
		ID:         a.ID,
		Name:       a.Name,
		Genre:      genre,
		Popularity: a.Popularity,
	}
	if len(a.Images) > 0 {
		da.ImageURL = a.Images[0].URL
	}
	return da
}

func (a artistObject) toProfile() domain.ArtistProfile {
	return domain.ArtistProfile{
		ID:         a.ID,
		Name:       a.Name,
		Genres:     a.Genres,
		Popularity: a.Popularity,
	}
}
