package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/service"
)

type contextKey string

const userKey contextKey = "current_user"

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.User, error)
}

// Auth guards protected routes. Whatever the reason (missing header,
// bad token, unknown or deactivated account) the response is the same
// generic 401.
func Auth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			user, err := resolver.ResolveIdentity(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					unauthorized(w)
					return
				}
				slog.Error("resolving identity", "error", err)
				respond(w, http.StatusInternalServerError, `{"error":{"code":"INTERNAL","message":"Something went wrong"}}`)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	respond(w, http.StatusUnauthorized, `{"error":{"code":"UNAUTHORIZED","message":"Invalid or expired token"}}`)
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// GetUser extracts the authenticated account from the request context.
// Only valid inside handlers wrapped by Auth.
func GetUser(ctx context.Context) *domain.User {
	return ctx.Value(userKey).(*domain.User)
}
