package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"task-management/internal/auth"
	apperrors "task-management/internal/errors"
	"task-management/internal/logging"
)

// requestLogging traces requests when TM_DEBUG is set.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debugf("%s %s (%s)\n", r.Method, r.URL.Path, time.Since(start))
	})
}

type contextKey string

const claimsContextKey contextKey = "authClaims"

// authMiddleware requires a "Bearer <token>" Authorization header, verifies
// it, and stores the token claims in the request context. The claims are
// trusted as-is for the token's lifetime; handlers do not re-fetch the user.
func authMiddleware(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, apperrors.NewInvalidTokenError("missing Authorization header", nil))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(w, apperrors.NewInvalidTokenError("malformed Authorization header", nil))
				return
			}

			claims, err := tokens.Verify(parts[1], time.Now().UTC())
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFromContext returns the verified claims placed by authMiddleware.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// ownerFromContext returns the authenticated user's id.
func ownerFromContext(ctx context.Context) (int64, bool) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
