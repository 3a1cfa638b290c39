package users

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/constants"
	"github.com/nlamduy/libris/internal/platform/sec"
	"github.com/nlamduy/libris/internal/platform/validate"
)

// Service implements account management and the credential flows.
type Service struct {
	repo     Repository
	sessions SessionStore
	tokens   *sec.TokenService
	logger   *slog.Logger
}

func NewService(repo Repository, sessions SessionStore, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account with a hashed password.
//
// The very first account registered on an empty install becomes the admin —
// that is how a fresh deployment is bootstrapped, and what the public
// /users/exists probe lets the frontend detect. Every registration after
// that produces a member.
func (service *Service) Register(context context.Context, input UserForCreate) (int64, error) {

	// ── 1. Validation ─────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 64)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	validator.Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		return 0, err
	}

	// ── 2. Hashing ────────────────────────────────────────────────────────
	// The plaintext never reaches the repository.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	// ── 3. Role Assignment ────────────────────────────────────────────────
	// The role never comes from the request body. First account in an empty
	// install bootstraps as admin; everyone after that is a member.
	role := sec.RoleMember
	total, err := service.repo.CountUsers(context)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		role = sec.RoleAdmin
	}

	// ── 4. Persistence ────────────────────────────────────────────────────
	id, err := service.repo.CreateUser(context, input, hashedPassword, role)
	if err != nil {
		return 0, err
	}

	service.logger.Info("user_registered",
		slog.Int64("user_id", id),
		slog.String("username", input.Username),
		slog.String("role", string(role)),
	)
	return id, nil
}

// Login verifies credentials and issues a signed access token.
//
// A missing account and a wrong password produce the SAME failure, so the
// response never reveals whether a username is registered.
func (service *Service) Login(context context.Context, input UserForLogin) (string, *User, error) {

	// ── 1. Account Lookup ─────────────────────────────────────────────────
	user, err := service.repo.GetUserByUsername(context, input.Username)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == 404 {
			return "", nil, apperr.Unauthorized("Wrong username or password")
		}
		return "", nil, err
	}

	// ── 2. Password Verification ──────────────────────────────────────────
	if err := sec.VerifyPassword(user.Password, input.Password); err != nil {
		if errors.Is(err, sec.ErrMismatchedPassword) {
			service.logger.Warn("login_failed", slog.String("username", input.Username))
			return "", nil, apperr.Unauthorized("Wrong username or password")
		}
		return "", nil, apperr.Internal(err)
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────
	token, err := service.tokens.GenerateAccessToken(user.ID, user.Role, constants.AccessTokenTTL)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", user.ID))
	return token, user, nil
}

// Logout invalidates the presented token for its remaining lifetime.
func (service *Service) Logout(context context.Context, token string) error {

	// The token must still be valid to learn its expiry. An already-invalid
	// token has nothing to revoke.
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := service.sessions.Revoke(context, token, remaining); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("user_logged_out", slog.Int64("user_id", claims.UserID))
	return nil
}

func (service *Service) GetUser(context context.Context, id int64) (*User, error) {
	return service.repo.GetUser(context, id)
}

func (service *Service) ListUsers(context context.Context) ([]User, error) {
	return service.repo.ListUsers(context)
}

// UpdateUser applies a sparse update; the password is re-hashed only when the
// payload actually carries one.
func (service *Service) UpdateUser(context context.Context, id int64, input UserForUpdate) error {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.Username != nil {
		validator.MinLen(FieldUsername, *input.Username, 3).MaxLen(FieldUsername, *input.Username, 64)
	}
	if input.Password != nil {
		validator.MinLen(FieldPassword, *input.Password, 8)
	}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	var hashedPassword *string
	if input.Password != nil {
		hashed, err := sec.HashPassword(*input.Password)
		if err != nil {
			return apperr.Internal(err)
		}
		hashedPassword = &hashed
	}

	if err := service.repo.UpdateUser(context, id, input, hashedPassword); err != nil {
		return err
	}

	service.logger.Info("user_updated", slog.Int64("user_id", id))
	return nil
}

func (service *Service) DeleteUser(context context.Context, id int64) error {
	if err := service.repo.DeleteUser(context, id); err != nil {
		return err
	}

	service.logger.Warn("user_deleted", slog.Int64("user_id", id))
	return nil
}

// CountUsers reports how many accounts exist; the public bootstrap probe
// uses it to decide whether first-run provisioning is needed.
func (service *Service) CountUsers(context context.Context) (int64, error) {
	return service.repo.CountUsers(context)
}
