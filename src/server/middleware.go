package server

import (
	"context"
	"net/http"

	"zenumljpg/src/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// requireAuth validates the bearer token and injects the authenticated
// principal into the request context. Convert has no placeholder owner: a
// request without a valid token never reaches the handler.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		claims, err := s.tokens.Validate(authHeader)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		principal := domain.Principal{
			UserID: claims.UserID,
			Email:  claims.Subject,
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFromContext returns the authenticated principal set by requireAuth.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}
