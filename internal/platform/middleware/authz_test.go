// Copyright (c) 2026 Libris. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlamduy/libris/internal/platform/ctxutil"
	"github.com/nlamduy/libris/internal/platform/middleware"
	"github.com/nlamduy/libris/internal/platform/sec"
)

// fakeVerifier resolves tokens from a fixed map; unknown tokens fail with
// the configured error.
type fakeVerifier struct {
	tokens map[string]*sec.AuthClaims
	err    error
}

func (f *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if claims, ok := f.tokens[tokenStr]; ok {
		return claims, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, sec.ErrTokenInvalid
}

// fakeRevoker marks a fixed token set as revoked.
type fakeRevoker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

// okHandler records whether it ran and echoes the authenticated user id.
func okHandler(ran *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*ran = true
		writer.WriteHeader(http.StatusOK)
	})
}

func errorMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Error
}

/*
TestAuthenticate_Anonymous lets requests without credentials through as
anonymous: the role gates reject them later, not this step.
*/
func TestAuthenticate_Anonymous(t *testing.T) {
	verifier := &fakeVerifier{}
	var sawClaims *sec.AuthClaims
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = middleware.GetUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, sawClaims)
}

/*
TestAuthenticate_ValidToken injects the verified claims into context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"good-token": {UserID: 9, Role: sec.RoleMember},
	}}

	var sawClaims *sec.AuthClaims
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = middleware.GetUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, sawClaims)
	assert.Equal(t, int64(9), sawClaims.UserID)
	assert.Equal(t, sec.RoleMember, sawClaims.Role)
}

/*
TestAuthenticate_CookieFallback accepts the session cookie when no
Authorization header is present.
*/
func TestAuthenticate_CookieFallback(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"cookie-token": {UserID: 4, Role: sec.RoleMember},
	}}

	var sawClaims *sec.AuthClaims
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = middleware.GetUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, sawClaims)
	assert.Equal(t, int64(4), sawClaims.UserID)
}

/*
TestAuthenticate_NonBearerHeaderFallsBackToCookie still honors the session
cookie when the Authorization header carries some other scheme.
*/
func TestAuthenticate_NonBearerHeaderFallsBackToCookie(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"cookie-token": {UserID: 4, Role: sec.RoleMember},
	}}

	var sawClaims *sec.AuthClaims
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = middleware.GetUser(request.Context())
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"basic_scheme", "Basic dXNlcjpwdw=="},
		{"bare_token", "just-a-token"},
		{"empty_bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sawClaims = nil
			request := httptest.NewRequest(http.MethodGet, "/books", nil)
			request.Header.Set("Authorization", tt.header)
			request.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			require.NotNil(t, sawClaims)
			assert.Equal(t, int64(4), sawClaims.UserID)
		})
	}
}

/*
TestAuthenticate_HeaderBeatsCookie gives the Authorization header priority
over the cookie when both are sent.
*/
func TestAuthenticate_HeaderBeatsCookie(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"header-token": {UserID: 1, Role: sec.RoleAdmin},
		"cookie-token": {UserID: 2, Role: sec.RoleMember},
	}}

	var sawClaims *sec.AuthClaims
	handler := middleware.Authenticate(verifier, nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = middleware.GetUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.Header.Set("Authorization", "Bearer header-token")
	request.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, sawClaims)
	assert.Equal(t, int64(1), sawClaims.UserID)
}

/*
TestAuthenticate_BadToken distinguishes expired from invalid tokens in the
user-facing message; both are 401.
*/
func TestAuthenticate_BadToken(t *testing.T) {
	tests := []struct {
		name        string
		verifyErr   error
		wantMessage string
	}{
		{"expired", sec.ErrTokenExpired, "Expired token. Please login again"},
		{"invalid", sec.ErrTokenInvalid, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.verifyErr}
			ran := false
			handler := middleware.Authenticate(verifier, nil)(okHandler(&ran))

			request := httptest.NewRequest(http.MethodGet, "/books", nil)
			request.Header.Set("Authorization", "Bearer whatever")
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, tt.wantMessage, errorMessage(t, recorder))
			assert.False(t, ran)
		})
	}
}

/*
TestAuthenticate_RevokedToken rejects a verified token that the logout
denylist knows about.
*/
func TestAuthenticate_RevokedToken(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"revoked-token": {UserID: 3, Role: sec.RoleMember},
	}}
	revoker := &fakeRevoker{revoked: map[string]bool{"revoked-token": true}}

	ran := false
	handler := middleware.Authenticate(verifier, revoker)(okHandler(&ran))

	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.Header.Set("Authorization", "Bearer revoked-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, recorder))
	assert.False(t, ran)
}

/*
TestAuthenticate_RevokerFailure surfaces denylist backend failures as 500
rather than silently admitting the token.
*/
func TestAuthenticate_RevokerFailure(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"good-token": {UserID: 3, Role: sec.RoleMember},
	}}
	revoker := &fakeRevoker{err: errors.New("redis down")}

	ran := false
	handler := middleware.Authenticate(verifier, revoker)(okHandler(&ran))

	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.False(t, ran)
}

func withClaims(request *http.Request, claims *sec.AuthClaims) *http.Request {
	ctx := ctxutil.WithAuthUser(request.Context(), claims)
	return request.WithContext(ctx)
}

/*
TestRequireAuth gates anonymous requests with 401.
*/
func TestRequireAuth(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		ran := false
		handler := middleware.RequireAuth(okHandler(&ran))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/borrowings", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Missing credentials", errorMessage(t, recorder))
		assert.False(t, ran)
	})

	t.Run("authenticated", func(t *testing.T) {
		ran := false
		handler := middleware.RequireAuth(okHandler(&ran))

		request := withClaims(httptest.NewRequest(http.MethodGet, "/borrowings", nil),
			&sec.AuthClaims{UserID: 5, Role: sec.RoleMember})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, ran)
	})
}

/*
TestRequireRole distinguishes anonymous (401) from under-privileged (403).
*/
func TestRequireRole(t *testing.T) {
	staffGate := middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin)

	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		wantStatus int
		wantRun    bool
	}{
		{"anonymous", nil, http.StatusUnauthorized, false},
		{"member_rejected", &sec.AuthClaims{UserID: 1, Role: sec.RoleMember}, http.StatusForbidden, false},
		{"issuer_admitted", &sec.AuthClaims{UserID: 2, Role: sec.RoleIssuer}, http.StatusOK, true},
		{"admin_admitted", &sec.AuthClaims{UserID: 3, Role: sec.RoleAdmin}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			handler := staffGate(okHandler(&ran))

			request := httptest.NewRequest(http.MethodPost, "/book", nil)
			if tt.claims != nil {
				request = withClaims(request, tt.claims)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantRun, ran)
		})
	}
}

/*
TestRequireRole_Stacked verifies that a stricter nested gate still rejects
after an outer gate admits.
*/
func TestRequireRole_Stacked(t *testing.T) {
	ran := false
	handler := middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin)(
		middleware.RequireRole(sec.RoleAdmin)(okHandler(&ran)),
	)

	request := withClaims(httptest.NewRequest(http.MethodDelete, "/user/1", nil),
		&sec.AuthClaims{UserID: 2, Role: sec.RoleIssuer})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, ran)
}
