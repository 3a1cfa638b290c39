package borrowing

import "context"

type Repository interface {
	GetBorrowing(context context.Context, id int64) (*Borrowing, error)
	ListByUser(context context.Context, userID int64) ([]Borrowing, error)
	ListByBook(context context.Context, bookID int64) ([]Borrowing, error)
	ListByStatus(context context.Context, status Status) ([]Borrowing, error)
	ListByBookCopy(context context.Context, bookID, copyID int64) ([]Borrowing, error)
	UpdateBorrowing(context context.Context, id int64, b ForUpdate) error

	// ReturnBorrowing closes the loan and frees its copy in one transaction.
	ReturnBorrowing(context context.Context, id int64) error
}
