package book

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBook inserts the title and shelves Count copies in one
	// transaction; either everything lands or nothing does.
	CreateBook(context context.Context, b BookForCreate) (int64, error)
	GetBook(context context.Context, id int64) (*Book, error)
	ListBooks(context context.Context) ([]Book, error)
	UpdateBook(context context.Context, id int64, b BookForUpdate) error

	AddCopy(context context.Context, c CopyForCreate) (int64, error)
	// Copies are always addressed by the composite (copy_id, book_id) key so
	// a copy id can never be reached through the wrong title.
	GetCopy(context context.Context, copyID, bookID int64) (*BookCopy, error)
	ListCopies(context context.Context, bookID int64) ([]BookCopy, error)
	UpdateCopy(context context.Context, copyID, bookID int64, c CopyForUpdate) error

	// BorrowCopy transitions the copy to borrowed and records the loan in
	// one transaction. The transition is conditional on the copy still being
	// available, so two concurrent borrows can never both succeed.
	BorrowCopy(context context.Context, copyID, bookID, userID int64, dueDate time.Time) (int64, error)
}
