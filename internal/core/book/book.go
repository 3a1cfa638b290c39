package book

import (
	"fmt"
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

// Book represents a catalogued title. Physical inventory lives in the
// BookCopy rows referencing it.
type Book struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	ISBN      string    `json:"isbn" db:"isbn"`
	Category  *string   `json:"category" db:"category"`
	Year      *int      `json:"year" db:"year"`
	Photo     *string   `json:"photo" db:"photo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CopyStatus is the lifecycle state of a physical copy.
type CopyStatus string

const (
	StatusAvailable CopyStatus = "available"
	StatusBorrowed  CopyStatus = "borrowed"
	StatusReserved  CopyStatus = "reserved"
)

// ParseCopyStatus converts a stored lowercase status string into a [CopyStatus].
func ParseCopyStatus(s string) (CopyStatus, error) {
	switch CopyStatus(s) {
	case StatusAvailable, StatusBorrowed, StatusReserved:
		return CopyStatus(s), nil
	}
	return "", fmt.Errorf("book: unknown copy status %q", s)
}

// Valid reports whether the status is one of the closed set.
func (s CopyStatus) Valid() bool {
	_, err := ParseCopyStatus(string(s))
	return err == nil
}

// BookCopy represents one physical copy of a Book.
type BookCopy struct {
	ID       int64      `json:"id" db:"id"`
	BookID   int64      `json:"book_id" db:"book_id"`
	Status   CopyStatus `json:"status" db:"status"`
	Location *string    `json:"location" db:"location"`
	AddedAt  time.Time  `json:"added_at" db:"added_at"`
}

// BookForCreate is the catalog entry payload. Count is the number of copies
// to shelve alongside the title; it is not a column itself.
type BookForCreate struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ISBN     string  `json:"isbn"`
	Category *string `json:"category"`
	Year     *int    `json:"year"`
	Photo    *string `json:"photo"`
	Count    int     `json:"count"`
}

// Fields produces the sparse column set for the book INSERT.
func (b BookForCreate) Fields() store.Fields {
	fields := store.Fields{}.
		Set(schema.Books.Title, b.Title).
		Set(schema.Books.Author, b.Author).
		Set(schema.Books.ISBN, b.ISBN)

	if b.Category != nil {
		fields = fields.Set(schema.Books.Category, *b.Category)
	}
	if b.Year != nil {
		fields = fields.Set(schema.Books.Year, *b.Year)
	}
	if b.Photo != nil {
		fields = fields.Set(schema.Books.Photo, *b.Photo)
	}
	return fields
}

// BookForUpdate is the sparse update payload: nil means "leave untouched".
type BookForUpdate struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	ISBN     *string `json:"isbn"`
	Category *string `json:"category"`
	Year     *int    `json:"year"`
	Photo    *string `json:"photo"`
}

// Fields produces the sparse column set for the book UPDATE.
func (b BookForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if b.Title != nil {
		fields = fields.Set(schema.Books.Title, *b.Title)
	}
	if b.Author != nil {
		fields = fields.Set(schema.Books.Author, *b.Author)
	}
	if b.ISBN != nil {
		fields = fields.Set(schema.Books.ISBN, *b.ISBN)
	}
	if b.Category != nil {
		fields = fields.Set(schema.Books.Category, *b.Category)
	}
	if b.Year != nil {
		fields = fields.Set(schema.Books.Year, *b.Year)
	}
	if b.Photo != nil {
		fields = fields.Set(schema.Books.Photo, *b.Photo)
	}
	return fields
}

// CopyForCreate shelves an additional copy of an existing title. The book id
// always comes from the URL, never the body.
type CopyForCreate struct {
	BookID   int64   `json:"-"`
	Location *string `json:"location"`
}

// Fields produces the sparse column set for the copy INSERT. New copies
// always start available.
func (c CopyForCreate) Fields() store.Fields {
	fields := store.Fields{}.
		Set(schema.BookCopies.BookID, c.BookID).
		Set(schema.BookCopies.Status, StatusAvailable)

	if c.Location != nil {
		fields = fields.Set(schema.BookCopies.Location, *c.Location)
	}
	return fields
}

// CopyForUpdate is the sparse copy update payload.
type CopyForUpdate struct {
	Status   *CopyStatus `json:"status"`
	Location *string     `json:"location"`
}

// Fields produces the sparse column set for the copy UPDATE.
func (c CopyForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if c.Status != nil {
		fields = fields.Set(schema.BookCopies.Status, *c.Status)
	}
	if c.Location != nil {
		fields = fields.Set(schema.BookCopies.Location, *c.Location)
	}
	return fields
}

// Global field names for validation
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldISBN   = "isbn"
	FieldYear   = "year"
	FieldCount  = "count"
	FieldStatus = "status"
)
