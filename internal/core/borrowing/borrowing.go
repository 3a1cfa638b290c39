package borrowing

import (
	"fmt"
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

// Borrowing is the loan record tying a user to one physical copy.
type Borrowing struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	BookID     int64      `json:"book_id" db:"book_id"`
	CopyID     int64      `json:"copy_id" db:"copy_id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnDate *time.Time `json:"return_date" db:"return_date"`
	Status     Status     `json:"status" db:"status"`
}

// Status is the lifecycle state of a loan.
type Status string

const (
	StatusBorrowed Status = "borrowed"
	StatusReturned Status = "returned"
	StatusLate     Status = "late"
)

// ParseStatus converts a stored lowercase status string into a [Status].
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusBorrowed, StatusReturned, StatusLate:
		return Status(s), nil
	}
	return "", fmt.Errorf("borrowing: unknown status %q", s)
}

// Valid reports whether the status is one of the closed set.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// ForUpdate is the sparse update payload: nil means "leave untouched".
type ForUpdate struct {
	ReturnDate *time.Time `json:"return_date"`
	Status     *Status    `json:"status"`
}

// Fields produces the sparse column set for the UPDATE.
func (b ForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if b.ReturnDate != nil {
		fields = fields.Set(schema.Borrowings.ReturnDate, *b.ReturnDate)
	}
	if b.Status != nil {
		fields = fields.Set(schema.Borrowings.Status, *b.Status)
	}
	return fields
}

// Global field names for validation
const (
	FieldStatus = "status"
)
