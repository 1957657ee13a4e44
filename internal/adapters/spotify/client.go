// Package spotify is the catalog adapter for the Spotify Web API. It maps
// upstream HTTP failures onto the domain error taxonomy and carries a
// credential tag on every client so the downgrade policy can branch on how
// a session was authenticated rather than on client identity.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultTimeout  = 10 * time.Second

	// One shared limiter guards all sessions against tripping the upstream
	// rate limiter when operations run concurrently.
	defaultRequestsPerSecond = 10
)

// Client is an authenticated session against the catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
	logger     *log.Logger
}

// compile-time interface assertion
var _ ports.Catalog = (*Client)(nil)

func newClient(httpClient *http.Client, baseURL string, tokens oauth2.TokenSource, limiter *rate.Limiter, logger *log.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		limiter:    limiter,
		logger:     logger,
	}
}

// get performs a rate-limited, bearer-authenticated GET and decodes the JSON
// body into out. Non-2xx statuses are mapped onto the domain taxonomy.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &domain.Error{Kind: domain.ErrTransport, Message: fmt.Sprintf("spotify: %v", err)}
	}

	token, err := c.tokens.Token()
	if err != nil {
		return &domain.Error{Kind: domain.ErrUnauthorized, Message: "spotify: could not obtain access token"}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("spotify: build request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.Error{Kind: domain.ErrTransport, Message: fmt.Sprintf("spotify: request failed: %v", err)}
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		c.logger.Debug("catalog request failed", "path", path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.Error{Kind: domain.ErrTransport, Message: fmt.Sprintf("spotify: decode response: %v", err)}
	}
	return nil
}

// statusError maps a non-2xx response onto the error taxonomy. Rate-limit
// responses carry the upstream Retry-After so callers can layer their own
// backoff; nothing here retries.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.Error{Kind: domain.ErrUnauthorized, Message: "spotify: status 401"}
	case resp.StatusCode == http.StatusNotFound:
		return &domain.Error{Kind: domain.ErrNotFound, Message: "spotify: status 404"}
	case resp.StatusCode == http.StatusTooManyRequests:
		msg := "spotify: status 429"
		if after := parseRetryAfter(resp); after > 0 {
			msg = fmt.Sprintf("spotify: status 429, retry after %s", after)
		}
		return &domain.Error{Kind: domain.ErrRateLimited, Message: msg}
	default:
		return &domain.Error{Kind: domain.ErrTransport, Message: fmt.Sprintf("spotify: status %d", resp.StatusCode)}
	}
}

func parseRetryAfter(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(retryAfter); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}
	return 0
}
