package users_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/sec"
	"github.com/nlamduy/libris/internal/users"
)

// fakeRepository is an in-memory Repository capturing the arguments the
// service hands to persistence.
type fakeRepository struct {
	users          map[string]*users.User
	createdRole    sec.Role
	createdHash    string
	updatedHash    *string
	updateRecorded bool
	nextID         int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: map[string]*users.User{}, nextID: 1}
}

func (f *fakeRepository) CreateUser(_ context.Context, u users.UserForCreate, hashedPassword string, role sec.Role) (int64, error) {
	f.createdRole = role
	f.createdHash = hashedPassword
	id := f.nextID
	f.nextID++
	f.users[u.Username] = &users.User{ID: id, Name: u.Name, Username: u.Username, Password: hashedPassword, Role: role, Email: u.Email}
	return id, nil
}

func (f *fakeRepository) GetUser(_ context.Context, id int64) (*users.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) GetUserByUsername(_ context.Context, username string) (*users.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) ListUsers(_ context.Context) ([]users.User, error) {
	out := make([]users.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeRepository) UpdateUser(_ context.Context, id int64, u users.UserForUpdate, hashedPassword *string) error {
	f.updateRecorded = true
	f.updatedHash = hashedPassword
	return nil
}

func (f *fakeRepository) DeleteUser(_ context.Context, id int64) error { return nil }

func (f *fakeRepository) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// fakeSessions records revocations.
type fakeSessions struct {
	revokedToken string
	revokedTTL   time.Duration
}

func (f *fakeSessions) Revoke(_ context.Context, token string, timeToLive time.Duration) error {
	f.revokedToken = token
	f.revokedTTL = timeToLive
	return nil
}

func (f *fakeSessions) IsRevoked(_ context.Context, token string) (bool, error) {
	return token == f.revokedToken, nil
}

func newTestService(t *testing.T) (*users.Service, *fakeRepository, *fakeSessions) {
	t.Helper()
	repo := newFakeRepository()
	sessions := &fakeSessions{}
	tokens, err := sec.NewTokenService("unit-test-secret", "libris-test")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return users.NewService(repo, sessions, tokens, logger), repo, sessions
}

func registerInput() users.UserForCreate {
	return users.UserForCreate{
		Name:     "Ada Lovelace",
		Username: "ada",
		Password: "very secret pw",
		Email:    "ada@example.com",
	}
}

/*
TestRegister hashes the password and assigns the role server-side: the
first account on an empty install bootstraps as admin, everyone after
that is a member.
*/
func TestRegister(t *testing.T) {
	service, repo, _ := newTestService(t)

	id, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// First-run bootstrap: an empty install needs an admin.
	assert.Equal(t, sec.RoleAdmin, repo.createdRole)

	// The stored credential is an Argon2id hash, never the plaintext.
	assert.NotEqual(t, "very secret pw", repo.createdHash)
	assert.NoError(t, sec.VerifyPassword(repo.createdHash, "very secret pw"))

	// Role is fixed server-side; a registration payload cannot escalate.
	second := registerInput()
	second.Username = "grace"
	second.Email = "grace@example.com"

	_, err = service.Register(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleMember, repo.createdRole)
	assert.Equal(t, sec.RoleAdmin, repo.users["ada"].Role)
}

/*
TestRegister_Validation rejects malformed payloads before anything is stored.
*/
func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*users.UserForCreate)
	}{
		{"missing_name", func(u *users.UserForCreate) { u.Name = "" }},
		{"short_username", func(u *users.UserForCreate) { u.Username = "ab" }},
		{"short_password", func(u *users.UserForCreate) { u.Password = "1234567" }},
		{"bad_email", func(u *users.UserForCreate) { u.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newTestService(t)
			input := registerInput()
			tt.mutate(&input)

			_, err := service.Register(context.Background(), input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Empty(t, repo.users)
		})
	}
}

/*
TestLogin issues a verifiable token carrying the account's id and role.
*/
func TestLogin(t *testing.T) {
	service, _, _ := newTestService(t)
	_, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, user, err := service.Login(context.Background(), users.UserForLogin{
		Username: "ada",
		Password: "very secret pw",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada", user.Username)

	tokens, err := sec.NewTokenService("unit-test-secret", "libris-test")
	require.NoError(t, err)
	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
}

/*
TestLogin_Failures yields the same 401 for an unknown account and a wrong
password so usernames cannot be enumerated.
*/
func TestLogin_Failures(t *testing.T) {
	service, _, _ := newTestService(t)
	_, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	tests := []struct {
		name  string
		input users.UserForLogin
	}{
		{"unknown_username", users.UserForLogin{Username: "nobody", Password: "whatever"}},
		{"wrong_password", users.UserForLogin{Username: "ada", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 401, ae.HTTPStatus)
			assert.Equal(t, "Wrong username or password", ae.Message)
		})
	}
}

/*
TestLogout revokes the token for its remaining lifetime; an invalid token is
a no-op rather than an error.
*/
func TestLogout(t *testing.T) {
	service, _, sessions := newTestService(t)
	_, err := service.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, _, err := service.Login(context.Background(), users.UserForLogin{Username: "ada", Password: "very secret pw"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), token))
	assert.Equal(t, token, sessions.revokedToken)
	assert.Greater(t, sessions.revokedTTL, time.Duration(0))

	// Garbage revokes nothing and still succeeds.
	sessions.revokedToken = ""
	require.NoError(t, service.Logout(context.Background(), "not-a-token"))
	assert.Empty(t, sessions.revokedToken)
}

/*
TestUpdateUser re-hashes only when the payload carries a password.
*/
func TestUpdateUser(t *testing.T) {
	t.Run("without_password", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		name := "New Name"

		require.NoError(t, service.UpdateUser(context.Background(), 1, users.UserForUpdate{Name: &name}))
		assert.True(t, repo.updateRecorded)
		assert.Nil(t, repo.updatedHash)
	})

	t.Run("with_password", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		password := "a brand new pw"

		require.NoError(t, service.UpdateUser(context.Background(), 1, users.UserForUpdate{Password: &password}))
		require.NotNil(t, repo.updatedHash)
		assert.NoError(t, sec.VerifyPassword(*repo.updatedHash, password))
	})

	t.Run("short_password_rejected", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		password := "short"

		err := service.UpdateUser(context.Background(), 1, users.UserForUpdate{Password: &password})
		require.Error(t, err)
		assert.False(t, repo.updateRecorded)
	})
}
