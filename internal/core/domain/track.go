package domain

// Track represents a catalog track in the domain layer. It is a
// request-scoped value object, immutable once fetched; Tempo is zero until
// resolved through the audio-features lookup.
type Track struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	ArtistID   string  `json:"artistId,omitempty"`
	Album      string  `json:"album"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Popularity int     `json:"popularity"`
	Tempo      float64 `json:"tempo,omitempty"`
}

// Artist is the shared recommendation shape for an artist found through a
// genre search. Genre carries the label the artist was found under and is
// serialized as "artist", with an always-empty album, so artist results stay
// shape-compatible with track results on the wire.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Genre      string `json:"artist"`
	Album      string `json:"album"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Popularity int    `json:"popularity"`
}

// ArtistProfile is the full catalog view of an artist, used to read the
// genre tags and popularity of a seed track's primary artist.
type ArtistProfile struct {
	ID         string
	Name       string
	Genres     []string
	Popularity int
}

// AudioFeatures holds the catalog's per-track audio analysis attributes.
type AudioFeatures struct {
	Danceability     float64
	Energy           float64
	Valence          float64
	Tempo            float64
	Instrumentalness float64
	Acousticness     float64
}
