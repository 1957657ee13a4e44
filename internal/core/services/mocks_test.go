package services

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeCompleter is a scripted ChatCompleter.
type fakeCompleter struct {
	reply string
	err   error

	gotPrompt      string
	gotTemperature float64
	gotMaxTokens   int
	calls          int
}

func (f *fakeCompleter) Complete(ctx context.Context, req ports.Completion) (string, error) {
	f.calls++
	f.gotPrompt = req.Prompt
	f.gotTemperature = req.Temperature
	f.gotMaxTokens = req.MaxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeCatalog is a scripted catalog; unset methods fail the call with a
// transport error so tests notice unexpected usage.
type fakeCatalog struct {
	searchArtists   func(ctx context.Context, genre string, limit int) ([]domain.Artist, error)
	searchTracks    func(ctx context.Context, query string, limit int) ([]domain.Track, error)
	getTrack        func(ctx context.Context, id string) (domain.Track, error)
	getArtist       func(ctx context.Context, id string) (domain.ArtistProfile, error)
	getFeatures     func(ctx context.Context, id string) (domain.AudioFeatures, error)
	getSimilar      func(ctx context.Context, seedIDs []string, target, min, max float64, limit int) ([]domain.Track, error)
	me              func(ctx context.Context) error
	searchCalls     int
	featuresCalls   int
	similarCalls    int
	lastSearchLimit int
}

var errUnscripted = &domain.Error{Kind: domain.ErrTransport, Message: "unscripted catalog call"}

func (f *fakeCatalog) SearchArtistsByGenre(ctx context.Context, genre string, limit int) ([]domain.Artist, error) {
	f.searchCalls++
	f.lastSearchLimit = limit
	if f.searchArtists == nil {
		return nil, errUnscripted
	}
	return f.searchArtists(ctx, genre, limit)
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if f.searchTracks == nil {
		return nil, errUnscripted
	}
	return f.searchTracks(ctx, query, limit)
}

func (f *fakeCatalog) GetTrack(ctx context.Context, id string) (domain.Track, error) {
	if f.getTrack == nil {
		return domain.Track{}, errUnscripted
	}
	return f.getTrack(ctx, id)
}

func (f *fakeCatalog) GetArtist(ctx context.Context, id string) (domain.ArtistProfile, error) {
	if f.getArtist == nil {
		return domain.ArtistProfile{}, errUnscripted
	}
	return f.getArtist(ctx, id)
}

func (f *fakeCatalog) GetAudioFeatures(ctx context.Context, id string) (domain.AudioFeatures, error) {
	f.featuresCalls++
	if f.getFeatures == nil {
		return domain.AudioFeatures{}, errUnscripted
	}
	return f.getFeatures(ctx, id)
}

func (f *fakeCatalog) GetSimilarTracks(ctx context.Context, seedIDs []string, target, min, max float64, limit int) ([]domain.Track, error) {
	f.similarCalls++
	if f.getSimilar == nil {
		return nil, errUnscripted
	}
	return f.getSimilar(ctx, seedIDs, target, min, max, limit)
}

func (f *fakeCatalog) Me(ctx context.Context) error {
	if f.me == nil {
		return nil
	}
	return f.me(ctx)
}

// fakeResolver hands out the user catalog for non-empty tokens and the app
// catalog otherwise, mirroring the real resolver's degrade-only contract.
type fakeResolver struct {
	app  *fakeCatalog
	user *fakeCatalog

	resolveCalls []string
}

func (r *fakeResolver) Resolve(ctx context.Context, userToken string) ports.CatalogSession {
	r.resolveCalls = append(r.resolveCalls, userToken)
	if userToken == "" || r.user == nil {
		return ports.CatalogSession{Catalog: r.app, Kind: ports.CredentialApp}
	}
	return ports.CatalogSession{Catalog: r.user, Kind: ports.CredentialUser}
}

func authError() error {
	return &domain.Error{Kind: domain.ErrUnauthorized, Message: "spotify: status 401"}
}
