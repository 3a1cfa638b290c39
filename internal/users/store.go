package users

import (
	"context"
	"time"

	"github.com/nlamduy/libris/internal/platform/sec"
)

type Repository interface {
	CreateUser(context context.Context, u UserForCreate, hashedPassword string, role sec.Role) (int64, error)
	GetUser(context context.Context, id int64) (*User, error)
	GetUserByUsername(context context.Context, username string) (*User, error)
	ListUsers(context context.Context) ([]User, error)
	UpdateUser(context context.Context, id int64, u UserForUpdate, hashedPassword *string) error
	DeleteUser(context context.Context, id int64) error
	CountUsers(context context.Context) (int64, error)
}

// SessionStore is the revocation list consulted on every authenticated
// request and written on logout.
type SessionStore interface {
	Revoke(context context.Context, token string, timeToLive time.Duration) error
	IsRevoked(context context.Context, token string) (bool, error)
}
