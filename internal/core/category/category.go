package category

import (
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

// Category is a browsable shelf label; books attach to categories through
// the book_categories join table maintained at the schema level.
type Category struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// ForCreate is the category payload.
type ForCreate struct {
	Name string `json:"name"`
}

// Fields produces the sparse column set for the INSERT.
func (c ForCreate) Fields() store.Fields {
	return store.Fields{}.Set(schema.Categories.Name, c.Name)
}

// ForUpdate is the sparse update payload: nil means "leave untouched".
type ForUpdate struct {
	Name *string `json:"name"`
}

// Fields produces the sparse column set for the UPDATE.
func (c ForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if c.Name != nil {
		fields = fields.Set(schema.Categories.Name, *c.Name)
	}
	if len(fields) > 0 {
		fields = fields.Set(schema.Categories.UpdatedAt, time.Now().UTC())
	}
	return fields
}

// Global field names for validation
const (
	FieldName = "name"
)
