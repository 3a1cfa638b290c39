package users

import (
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/sec"
	"github.com/nlamduy/libris/internal/platform/store"
)

// User represents a registered account.
//
// The password column always stores an encoded hash, never plaintext, and is
// excluded from every JSON response.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      sec.Role  `json:"role" db:"role"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Photo     *string   `json:"photo" db:"photo"`
	Address   *string   `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserForCreate is the registration payload.
//
// Role is never taken from the request: the first account on an empty
// install becomes the admin, every later registration a member.
type UserForCreate struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Photo    *string `json:"photo"`
	Address  *string `json:"address"`
}

// Fields produces the sparse column set for the INSERT. The password value
// must already be hashed by the caller.
func (u UserForCreate) Fields(hashedPassword string, role sec.Role) store.Fields {
	fields := store.Fields{}.
		Set(schema.Users.Name, u.Name).
		Set(schema.Users.Role, role).
		Set(schema.Users.Username, u.Username).
		Set(schema.Users.Password, hashedPassword).
		Set(schema.Users.Email, u.Email)

	if u.Phone != nil {
		fields = fields.Set(schema.Users.Phone, *u.Phone)
	}
	if u.Photo != nil {
		fields = fields.Set(schema.Users.Photo, *u.Photo)
	}
	if u.Address != nil {
		fields = fields.Set(schema.Users.Address, *u.Address)
	}
	return fields
}

// UserForUpdate is the sparse update payload: nil means "leave untouched".
//
// Role and Password never come from the generic update body: the role is
// fixed at registration and passwords are re-hashed by the service.
type UserForUpdate struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Photo    *string `json:"photo"`
	Address  *string `json:"address"`
}

// Fields produces the sparse column set for the UPDATE. If a password change
// is part of the update, the caller passes the already-hashed replacement.
func (u UserForUpdate) Fields(hashedPassword *string) store.Fields {
	fields := store.Fields{}

	if u.Name != nil {
		fields = fields.Set(schema.Users.Name, *u.Name)
	}
	if u.Username != nil {
		fields = fields.Set(schema.Users.Username, *u.Username)
	}
	if hashedPassword != nil {
		fields = fields.Set(schema.Users.Password, *hashedPassword)
	}
	if u.Email != nil {
		fields = fields.Set(schema.Users.Email, *u.Email)
	}
	if u.Phone != nil {
		fields = fields.Set(schema.Users.Phone, *u.Phone)
	}
	if u.Photo != nil {
		fields = fields.Set(schema.Users.Photo, *u.Photo)
	}
	if u.Address != nil {
		fields = fields.Set(schema.Users.Address, *u.Address)
	}
	if len(fields) > 0 {
		fields = fields.Set(schema.Users.UpdatedAt, time.Now().UTC())
	}
	return fields
}

// UserForLogin is the credential pair presented at login.
type UserForLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldEmail    = "email"
)
