package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/vibecheck-labs/vibecheck/internal/adapters/groq"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/rest"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/spotify"
	"github.com/vibecheck-labs/vibecheck/internal/config"
	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
	"github.com/vibecheck-labs/vibecheck/internal/worker"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	app := &cli.Command{
		Name:  "vibecheck",
		Usage: "Music recommendation engine driven by mood prompts and seed tracks",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the recommendations API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "info",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if level, err := log.ParseLevel(cmd.String("log-level")); err == nil {
						logger.SetLevel(level)
					}
					return serve(ctx, cmd.String("config"), logger)
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func serve(ctx context.Context, configPath string, logger *log.Logger) error {
	// .env first so the config overlay sees the same environment the
	// original deployment did.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return errors.New("spotify client_id and client_secret are required")
	}

	// Genre vocabulary: a load failure degrades to an empty set, in which
	// case genre classification fails closed.
	var genres *domain.GenreSet
	if raw, err := config.LoadGenres(cfg.Recommender.GenresPath); err != nil {
		logger.Error("failed to load genre vocabulary, classification disabled", "path", cfg.Recommender.GenresPath, "err", err)
		genres = domain.NewGenreSet(nil)
	} else {
		genres = domain.NewGenreSet(raw)
		logger.Info("loaded genre vocabulary", "count", genres.Len())
	}

	var completer ports.ChatCompleter
	if cfg.Groq.APIKey != "" {
		completer = groq.NewClient("", cfg.Groq.APIKey, cfg.Groq.Model)
	} else {
		logger.Warn("GROQ_API_KEY not set, genre classification disabled")
	}

	resolver := spotify.NewResolver(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
	}, logger.With("component", "spotify"))

	classifier := services.NewGenreClassifier(completer, genres, logger.With("component", "classifier"))
	search := services.NewArtistSearch(resolver, logger.With("component", "artist_search"))
	cache := services.NewTempoCache()
	recommender := services.NewRecommender(classifier, search, resolver, cache, logger.With("component", "recommender"))

	pool := worker.NewPool(recommender, 100, logger.With("component", "prefetch"))
	pool.Start(2)
	defer pool.Stop()

	handler := rest.NewHandler(recommender, pool, logger.With("component", "rest"))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	logger.Info("vibecheck API listening", "addr", cfg.Server.Addr())

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}
	return nil
}
