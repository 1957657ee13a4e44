package spotify

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// Config holds the settings for a Resolver. BaseURL, TokenURL, Timeout and
// RequestsPerSecond default to production values when zero.
type Config struct {
	ClientID          string
	ClientSecret      string
	BaseURL           string
	TokenURL          string
	Timeout           time.Duration
	RequestsPerSecond int
}

// Resolver decides which credential backs a catalog session. The
// application-credential client is built once from a cached client
// credentials token source; user tokens are validated with an identity probe
// and degrade to the application client on any failure.
type Resolver struct {
	app        *Client
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *log.Logger
}

var _ ports.CatalogResolver = (*Resolver)(nil)

// NewResolver constructs a Resolver.
func NewResolver(cfg Config, logger *log.Logger) *Resolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond)

	appCredentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	appTokens := appCredentials.TokenSource(context.Background())

	return &Resolver{
		app:        newClient(httpClient, cfg.BaseURL, appTokens, limiter, logger),
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		limiter:    limiter,
		logger:     logger,
	}
}

// Resolve returns the catalog session for a call. Without a token it is the
// application session; with one, a user session validated by the identity
// probe. Resolve never fails outward, it only degrades.
func (r *Resolver) Resolve(ctx context.Context, userToken string) ports.CatalogSession {
	if userToken == "" {
		return ports.CatalogSession{Catalog: r.app, Kind: ports.CredentialApp}
	}

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: userToken, TokenType: "Bearer"})
	user := newClient(r.httpClient, r.baseURL, tokens, r.limiter, r.logger)
	if err := user.Me(ctx); err != nil {
		r.logger.Warn("user token failed identity probe, downgrading to application credentials", "err", err)
		return ports.CatalogSession{Catalog: r.app, Kind: ports.CredentialApp}
	}
	return ports.CatalogSession{Catalog: user, Kind: ports.CredentialUser}
}
