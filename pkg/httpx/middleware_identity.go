package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hiddengems/pkg/idx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"
)

// TokenResolver turns a bearer token into a user ID. *jwtx.Codec implements it.
type TokenResolver interface {
	Resolve(token string) (idx.ID, bool)
}

// IdentityMiddleware attaches the caller's identity to the request context
// when a valid bearer token is presented. It never rejects a request: missing
// headers, other schemes and invalid tokens all continue anonymously.
// Endpoints that need a user add RequireIdentity.
func IdentityMiddleware(resolver TokenResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			id, ok := resolver.Resolve(raw)
			if !ok {
				slogx.FromContext(ctx).Debug("bearer token rejected, continuing anonymously")
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithCurrentUser(ctx, id)
			ctx = slogx.WithUserID(ctx, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireIdentity rejects anonymous requests with 401 and an RFC 6750
// challenge. A request whose token failed to resolve is anonymous, so it
// gets the same response as one with no Authorization header.
func RequireIdentity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := CurrentUser(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("WWW-Authenticate", `Bearer realm="hiddengems"`)
			WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		})
	}
}
