package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
)

// --- Mocks ---

type stubCompleter struct {
	reply string
}

func (s *stubCompleter) Complete(ctx context.Context, req ports.Completion) (string, error) {
	return s.reply, nil
}

type stubCatalog struct {
	artists  []domain.Artist
	tracks   []domain.Track
	track    domain.Track
	profile  domain.ArtistProfile
	features domain.AudioFeatures
	err      error
}

func (s *stubCatalog) SearchArtistsByGenre(ctx context.Context, genre string, limit int) ([]domain.Artist, error) {
	return s.artists, s.err
}

func (s *stubCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	return s.tracks, s.err
}

func (s *stubCatalog) GetTrack(ctx context.Context, id string) (domain.Track, error) {
	return s.track, s.err
}

func (s *stubCatalog) GetArtist(ctx context.Context, id string) (domain.ArtistProfile, error) {
	return s.profile, s.err
}

func (s *stubCatalog) GetAudioFeatures(ctx context.Context, id string) (domain.AudioFeatures, error) {
	return s.features, s.err
}

func (s *stubCatalog) GetSimilarTracks(ctx context.Context, seedIDs []string, target, min, max float64, limit int) ([]domain.Track, error) {
	return s.tracks, s.err
}

func (s *stubCatalog) Me(ctx context.Context) error {
	return s.err
}

type stubResolver struct {
	catalog *stubCatalog
}

func (s *stubResolver) Resolve(ctx context.Context, userToken string) ports.CatalogSession {
	return ports.CatalogSession{Catalog: s.catalog, Kind: ports.CredentialApp}
}

func newTestHandler(catalog *stubCatalog, reply string, vocabulary []string) *Handler {
	logger := log.New(io.Discard)
	resolver := &stubResolver{catalog: catalog}
	classifier := services.NewGenreClassifier(&stubCompleter{reply: reply}, domain.NewGenreSet(vocabulary), logger)
	search := services.NewArtistSearch(resolver, logger)
	rec := services.NewRecommender(classifier, search, resolver, services.NewTempoCache(), logger)
	return NewHandler(rec, nil, logger)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestPromptRecommendations(t *testing.T) {
	catalog := &stubCatalog{artists: []domain.Artist{
		{ID: "a1", Name: "One", Genre: "rock", Popularity: 70},
		{ID: "a2", Name: "Two", Genre: "rock", Popularity: 60},
	}}
	h := newTestHandler(catalog, "rock", []string{"rock"})

	rr := postJSON(t, h, "/recommendations/prompt", `{"prompt":"loud guitars"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var body struct {
		Success  bool            `json:"success"`
		Genre    string          `json:"genre"`
		Artists  []domain.Artist `json:"artists"`
		Selected domain.Artist   `json:"selected"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Genre != "Rock" {
		t.Errorf("body: %+v", body)
	}
	if len(body.Artists) != 2 || body.Selected.ID != "a1" {
		t.Errorf("artists/selected: %+v", body)
	}
}

func TestPromptRecommendations_Validation(t *testing.T) {
	h := newTestHandler(&stubCatalog{}, "rock", []string{"rock"})

	t.Run("missing prompt", func(t *testing.T) {
		rr := postJSON(t, h, "/recommendations/prompt", `{}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", rr.Code)
		}
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/recommendations/prompt", strings.NewReader("prompt=x"))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnsupportedMediaType {
			t.Fatalf("status: got %d, want 415", rr.Code)
		}
	})
}

func TestPromptRecommendations_GenreUnderivable(t *testing.T) {
	h := newTestHandler(&stubCatalog{}, "polka", []string{"rock"})

	rr := postJSON(t, h, "/recommendations/prompt", `{"prompt":"oompah"}`)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success || body.Error == "" {
		t.Errorf("body: %+v", body)
	}
}

func TestSeedRecommendations(t *testing.T) {
	catalog := &stubCatalog{
		track:   domain.Track{ID: "t1", ArtistID: "seed"},
		profile: domain.ArtistProfile{ID: "seed", Name: "Seed", Genres: []string{"indie pop"}},
		artists: []domain.Artist{
			{ID: "a1", Name: "One", Genre: "indie pop", Popularity: 30},
			{ID: "a2", Name: "Two", Genre: "indie pop", Popularity: 95},
		},
	}
	h := newTestHandler(catalog, "", nil)

	rr := postJSON(t, h, "/recommendations", `{"songId":"t1"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Success     bool            `json:"success"`
		Songs       []domain.Artist `json:"songs"`
		Genre       string          `json:"genre"`
		SeedTrackID string          `json:"seed_song_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Genre != "indie pop" || body.SeedTrackID != "t1" {
		t.Errorf("body: %+v", body)
	}
	if len(body.Songs) != 1 || body.Songs[0].Popularity != 30 {
		t.Errorf("songs: %+v", body.Songs)
	}
}

func TestSeedRecommendations_MissingSongID(t *testing.T) {
	h := newTestHandler(&stubCatalog{}, "", nil)
	rr := postJSON(t, h, "/recommendations", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rr.Code)
	}
}

func TestTempoRecommendations(t *testing.T) {
	catalog := &stubCatalog{
		track:    domain.Track{ID: "t1"},
		features: domain.AudioFeatures{Tempo: 128},
		tracks: []domain.Track{
			{ID: "r1", Name: "One"},
			{ID: "r2", Name: "Two"},
		},
	}
	h := newTestHandler(catalog, "", nil)

	rr := postJSON(t, h, "/recommendations/tempo", `{"songId":"t1"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Success bool           `json:"success"`
		Tempo   float64        `json:"tempo"`
		Songs   []domain.Track `json:"songs"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Tempo != 128 || len(body.Songs) != 2 {
		t.Errorf("body: %+v", body)
	}
}

func TestSearchTracks(t *testing.T) {
	catalog := &stubCatalog{tracks: []domain.Track{{ID: "t1", Name: "Found"}}}
	h := newTestHandler(catalog, "", nil)

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", rr.Code)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?q=test&limit=500", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", rr.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search?q=test", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		var body searchResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !body.Success || len(body.Songs) != 1 {
			t.Errorf("body: %+v", body)
		}
	})
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&stubCatalog{}, "", nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
}
