package reservation

import (
	"fmt"
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

// Reservation holds a copy for a user ahead of borrowing.
type Reservation struct {
	ID              int64     `json:"id" db:"id"`
	CopyID          int64     `json:"copy_id" db:"copy_id"`
	BookID          int64     `json:"book_id" db:"book_id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	ReservationDate time.Time `json:"reservation_date" db:"reservation_date"`
	Status          Status    `json:"status" db:"status"`
}

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusDeclined  Status = "declined"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// ParseStatus converts a stored lowercase status string into a [Status].
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusDeclined, StatusExpired, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("reservation: unknown status %q", s)
}

// Valid reports whether the status is one of the closed set.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// ForCreate is the reservation payload. New reservations always start
// pending, dated at creation time.
type ForCreate struct {
	CopyID int64 `json:"copy_id"`
	BookID int64 `json:"book_id"`
	UserID int64 `json:"user_id"`
}

// Fields produces the sparse column set for the INSERT.
func (r ForCreate) Fields() store.Fields {
	return store.Fields{}.
		Set(schema.Reservations.CopyID, r.CopyID).
		Set(schema.Reservations.BookID, r.BookID).
		Set(schema.Reservations.UserID, r.UserID).
		Set(schema.Reservations.ReservationDate, time.Now().UTC()).
		Set(schema.Reservations.Status, StatusPending)
}

// ForUpdate is the sparse update payload: nil means "leave untouched".
type ForUpdate struct {
	Status *Status `json:"status"`
}

// Fields produces the sparse column set for the UPDATE.
func (r ForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if r.Status != nil {
		fields = fields.Set(schema.Reservations.Status, *r.Status)
	}
	return fields
}

// Global field names for validation
const (
	FieldCopyID = "copy_id"
	FieldBookID = "book_id"
	FieldUserID = "user_id"
	FieldStatus = "status"
)
