package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tasklet/internal/domain"
	"tasklet/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier validates a raw bearer token and returns its claims.
// This abstraction keeps the middleware and the Lambda authorizer
// agnostic to how verification is implemented.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.TokenClaims, error)
}

// JWKSVerifier verifies RS256 tokens against the issuer's published
// key set. Each verification resolves the token's kid through the key
// set client; the client handles caching.
type JWKSVerifier struct {
	keySet *KeySetClient
	issuer string
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier backed by the given key set
// client. issuer is optional; when set, the token's iss claim must
// match it.
func NewJWKSVerifier(keySet *KeySetClient, issuer string, logger *slog.Logger) *JWKSVerifier {
	return &JWKSVerifier{
		keySet: keySet,
		issuer: issuer,
		logger: logger,
	}
}

// Verify validates token and returns its claims, or one of the domain
// token errors. Only RS256 is accepted; there is no algorithm
// negotiation, which closes off algorithm-confusion attacks.
func (v *JWKSVerifier) Verify(ctx context.Context, token string) (*models.TokenClaims, error) {
	if token == "" || strings.Count(token, ".") != 2 {
		return nil, domain.ErrMalformedToken
	}

	kid, err := signingKeyID(token)
	if err != nil {
		return nil, err
	}

	key, err := v.keySet.PublicKey(ctx, kid)
	if err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &models.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	if err != nil {
		v.logger.Debug("token verification failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidSignature
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", domain.ErrInvalidSignature)
	}

	return claims, nil
}

// signingKeyID reads the kid from the token header without verifying
// the signature. The header is the only part inspected before the key
// is known.
func signingKeyID(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", domain.ErrMalformedToken
	}

	kid, _ := parsed.Header["kid"].(string)
	if kid == "" {
		return "", fmt.Errorf("%w: token header has no kid", domain.ErrUnknownSigningKey)
	}

	return kid, nil
}
