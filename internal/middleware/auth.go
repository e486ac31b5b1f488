package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dailypush/dailypush/internal/domain"
	internal_errors "github.com/dailypush/dailypush/internal/errors"
	"github.com/dailypush/dailypush/internal/utils"
)

const AccessTokenCookie = "accessToken"

// Resolver maps a raw session token to the acting principal.
type Resolver interface {
	Resolve(ctx context.Context, token string) domain.Principal
}

// Key to store the principal in the request context
type key int

const principalKey key = 0

var errNeedLogin = internal_errors.Unauthorized("Please log in to access this page.")

type Auth struct {
	resolver      Resolver
	adminUsername domain.Username
}

func NewAuth(resolver Resolver, adminUsername domain.Username) *Auth {
	return &Auth{resolver: resolver, adminUsername: adminUsername}
}

// Resolve attaches the principal to every request. Bad or missing tokens
// leave the request anonymous.
func (a *Auth) Resolve() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := a.resolver.Resolve(r.Context(), TokenFromRequest(r))
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NeedAuth rejects anonymous requests. Must run after Resolve.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PrincipalFromContext(r).IsAnonymous() {
				utils.WriteErrorAndStatusCode(w, errNeedLogin)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly answers 403 to everyone but the configured administrator,
// anonymous visitors included.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !PrincipalFromContext(r).IsAdmin(a.adminUsername) {
				utils.WriteErrorAndStatusCode(w, internal_errors.Forbidden())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) IsAdmin(p domain.Principal) bool {
	return p.IsAdmin(a.adminUsername)
}

// PrincipalFromContext returns Anonymous when Resolve did not run.
func PrincipalFromContext(r *http.Request) domain.Principal {
	principal, ok := r.Context().Value(principalKey).(domain.Principal)
	if !ok {
		return domain.Anonymous
	}
	return principal
}

// TokenFromRequest prefers the cookie (browsers) over the Authorization header (API clients).
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}
