package fine

import (
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

// Fine is a monetary penalty attached to a borrowing transaction.
type Fine struct {
	ID            int64      `json:"id" db:"id"`
	TransactionID int64      `json:"transaction_id" db:"transaction_id"`
	FineAmount    float64    `json:"fine_amount" db:"fine_amount"`
	Paid          bool       `json:"paid" db:"paid"`
	PaidDate      *time.Time `json:"paid_date" db:"paid_date"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
}

// ForCreate is the fine payload. New fines always start unpaid.
type ForCreate struct {
	TransactionID int64   `json:"transaction_id"`
	FineAmount    float64 `json:"fine_amount"`
}

// Fields produces the sparse column set for the INSERT.
func (f ForCreate) Fields() store.Fields {
	return store.Fields{}.
		Set(schema.Fines.TransactionID, f.TransactionID).
		Set(schema.Fines.FineAmount, f.FineAmount).
		Set(schema.Fines.Paid, false)
}

// ForUpdate is the sparse update payload: nil means "leave untouched".
//
// Marking a fine paid without a date stamps it with the current time.
type ForUpdate struct {
	FineAmount *float64   `json:"fine_amount"`
	Paid       *bool      `json:"paid"`
	PaidDate   *time.Time `json:"paid_date"`
}

// Fields produces the sparse column set for the UPDATE.
func (f ForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if f.FineAmount != nil {
		fields = fields.Set(schema.Fines.FineAmount, *f.FineAmount)
	}
	if f.Paid != nil {
		fields = fields.Set(schema.Fines.Paid, *f.Paid)

		if *f.Paid && f.PaidDate == nil {
			fields = fields.Set(schema.Fines.PaidDate, time.Now().UTC())
		}
	}
	if f.PaidDate != nil {
		fields = fields.Set(schema.Fines.PaidDate, *f.PaidDate)
	}
	if len(fields) > 0 {
		fields = fields.Set(schema.Fines.UpdatedAt, time.Now().UTC())
	}
	return fields
}

// Global field names for validation
const (
	FieldTransactionID = "transaction_id"
	FieldFineAmount    = "fine_amount"
)
