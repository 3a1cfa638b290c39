package fine

import "context"

type Repository interface {
	CreateFine(context context.Context, f ForCreate) (int64, error)
	GetFine(context context.Context, id int64) (*Fine, error)
	ListFines(context context.Context) ([]Fine, error)
	ListUnpaid(context context.Context) ([]Fine, error)
	UpdateFine(context context.Context, id int64, f ForUpdate) error
}
