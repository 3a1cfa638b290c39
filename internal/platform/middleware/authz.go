// Copyright (c) 2026 Libris. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Libris API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/constants"
	"github.com/nlamduy/libris/internal/platform/ctxutil"
	"github.com/nlamduy/libris/internal/platform/respond"
	"github.com/nlamduy/libris/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec]
// implementation, allowing us to easily inject stubs during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// TokenRevoker reports whether a token has been invalidated before its
// natural expiry (logout). A nil revoker disables the check.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Authenticate extracts and verifies the JWT carried by the request.
//
// # Flow
//  1. Look for 'Authorization: Bearer <token>'; fall back to the 'token' cookie.
//  2. If neither is present, the request proceeds as anonymous — the gates
//     below reject it later if the route requires identity.
//  3. Verify the token. Expired and invalid tokens produce DIFFERENT
//     user-facing messages; both are authentication (401) failures.
//  4. Consult the revocation list, then inject [*sec.AuthClaims] into the
//     request context for downstream use.
//
// This step is idempotent and reads only; it never touches the database.
func Authenticate(verifier TokenVerifier, revoker TokenRevoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr, ok := ExtractToken(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.Unauthorized("Expired token. Please login again"))
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				return
			}

			// ── 3. Revocation Check ───────────────────────────────────────────
			if revoker != nil {
				revoked, err := revoker.IsRevoked(request.Context(), tokenStr)
				if err != nil {
					respond.Error(writer, request, apperr.Internal(err))
					return
				}
				if revoked {
					respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
					return
				}
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// ExtractToken locates the bearer token: Authorization header first, then
// the 'token' cookie. The boolean reports whether anything was found.
//
// A header that carries no bearer token (a different scheme, say) does not
// end the search; the cookie is still consulted.
func ExtractToken(request *http.Request) (string, bool) {
	if authHeader := request.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
	}

	if cookie, err := request.Cookie(constants.TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Missing credentials"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal's role is not a member of the
// required set.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequireAuth], so the two don't need to be stacked — but stacking is
// harmless: each gate short-circuits without invoking the wrapped handler.
//
// Rejection here is an authorization failure (403), deliberately distinct
// from the authentication failures above: the caller IS known, just not
// privileged enough.
func RequireRole(required ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Missing credentials"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !claims.Role.In(required...) {
				respond.Error(writer, request, apperr.Forbidden("Forbidden"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the [*sec.AuthClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.AuthClaims] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	return ctxutil.GetAuthUser(ctx)
}
