package auth

import (
	"context"
	"log/slog"
	"strings"

	"tasklet/internal/domain"
)

// Decision is the authorizer's verdict for one request. On allow the
// decision is bound to the caller's subject identifier; on deny the
// principal falls back to the anonymous "user".
type Decision struct {
	Allowed   bool
	Principal string
}

// DeniedPrincipal is the placeholder principal attached to deny
// decisions, matching what the gateway expects for unauthenticated
// callers.
const DeniedPrincipal = "user"

// Authorizer converts a raw Authorization header into an allow/deny
// decision. It is fail-closed: every verification failure, whatever
// its cause, degrades to a deny decision rather than a hard error.
type Authorizer struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func NewAuthorizer(verifier TokenVerifier, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		verifier: verifier,
		logger:   logger,
	}
}

// Authorize verifies the bearer token in authorizationHeader. The
// grant is all-or-nothing: an allow decision covers every API
// operation, there is no per-route granularity.
func (a *Authorizer) Authorize(ctx context.Context, authorizationHeader string) Decision {
	token, err := BearerToken(authorizationHeader)
	if err != nil {
		a.logger.Info("authorization denied", "error", err)
		return Decision{Allowed: false, Principal: DeniedPrincipal}
	}

	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		a.logger.Info("authorization denied", "error", err)
		return Decision{Allowed: false, Principal: DeniedPrincipal}
	}

	a.logger.Info("authorization granted", "user_id", claims.UserID())
	return Decision{Allowed: true, Principal: claims.UserID()}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMalformedToken
	}

	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", domain.ErrMalformedToken
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", domain.ErrMalformedToken
	}

	return token, nil
}
