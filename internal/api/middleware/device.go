package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hyperhustle/hustle-go/internal/api/apierr"
	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/services/identity"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Device creates middleware that resolves the caller's device identity from
// their token and rejects requests without one.
func Device(identityService *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ident, err := identityService.Get(r.Context(), model.PlayerID(token))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the device token from the request. The Authorization
// header wins over the explicit device header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.Header.Get("X-Device-Token")
}

// GetIdentity returns the caller's identity from the request context
func GetIdentity(ctx context.Context) *model.Identity {
	ident, _ := ctx.Value(identityContextKey).(*model.Identity)
	return ident
}

// MustGetIdentity returns the caller's identity or panics
func MustGetIdentity(ctx context.Context) *model.Identity {
	ident := GetIdentity(ctx)
	if ident == nil {
		panic("no identity in context - device middleware not applied?")
	}
	return ident
}
