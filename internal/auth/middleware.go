package auth

import (
	"context"
	"net/http"
	"strings"

	"comanda-pos/internal/common/httpx"
)

type ctxKey string

const userKey ctxKey = "auth_user"

// RequireAuth guards the caja routes: a valid bearer token is required,
// anything else gets a 401 problem response.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpx.WriteProblem(w, http.StatusUnauthorized, "missing_token", "Authorization: Bearer token required")
				return
			}
			nombre, _, err := ValidateToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httpx.WriteProblem(w, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, nombre)))
		})
	}
}

// UserFromContext returns the authenticated user name, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	nombre, ok := ctx.Value(userKey).(string)
	return nombre, ok
}
