package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// callCatalog runs a catalog call under the preferred credential and applies
// the downgrade-and-retry-once policy: when the call fails with an
// authorization error and the session was user-scoped, it is retried exactly
// once under the application credential. Any further failure is terminal; an
// explicit two-attempt sequence keeps the "exactly once" contract obvious.
// Non-auth errors are never retried.
func callCatalog(ctx context.Context, resolver ports.CatalogResolver, logger *log.Logger, userToken string, call func(ports.Catalog) error) error {
	session := resolver.Resolve(ctx, userToken)
	err := call(session.Catalog)
	if err == nil {
		return nil
	}
	if session.Kind != ports.CredentialUser || !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}

	logger.Info("user token unauthorized, retrying with application credentials")
	session = resolver.Resolve(ctx, "")
	return call(session.Catalog)
}
