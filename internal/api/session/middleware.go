package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

type contextKey string

const identityKey contextKey = "sessionIdentity"

// Middleware resolves the session cookie to an Identity and attaches it to
// the request context. Requests without a valid session proceed as guests;
// only store infrastructure failures are logged, and even those do not block
// the request.
func Middleware(store Store, cookieName string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					logger.ErrorContext(r.Context(), "Session store lookup failed",
						slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the authenticated identity for the request, if any.
// The second return is false for guest requests.
func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the identity. Intended for tests
// and internal wiring.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
