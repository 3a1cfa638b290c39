package reservation

import "context"

type Repository interface {
	CreateReservation(context context.Context, r ForCreate) (int64, error)
	GetReservation(context context.Context, id int64) (*Reservation, error)
	ListReservations(context context.Context) ([]Reservation, error)
	ListByUser(context context.Context, userID int64) ([]Reservation, error)
	UpdateReservation(context context.Context, id int64, r ForUpdate) error
}
