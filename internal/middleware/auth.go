package middleware

import (
	"log/slog"
	"net/http"

	"tasklet/internal/auth"
	"tasklet/internal/httputil"
)

// Auth verifies the bearer token on every request and injects the
// subject identifier into the request context. Verification failures
// of any kind produce a 401; the request never reaches a handler with
// an unverified identity.
func Auth(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Liveness probes carry no token.
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Info("request denied", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.UserID()))
		})
	}
}
