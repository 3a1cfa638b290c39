package review

import "context"

type Repository interface {
	CreateReview(context context.Context, r ForCreate) (int64, error)
	GetReview(context context.Context, id int64) (*Review, error)
	ListReviews(context context.Context) ([]Review, error)
	ListByBook(context context.Context, bookID int64) ([]Review, error)
	ListByUser(context context.Context, userID int64) ([]Review, error)
	UpdateReview(context context.Context, id int64, r ForUpdate) error
	DeleteReview(context context.Context, id int64) error
}
