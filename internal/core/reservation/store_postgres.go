package reservation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CreateReservation(context context.Context, r ForCreate) (int64, error) {
	return store.Create(context, repository.db, schema.Reservations.Table, r.Fields())
}

func (repository *PostgresRepository) GetReservation(context context.Context, id int64) (*Reservation, error) {
	return store.Get[Reservation](context, repository.db, schema.Reservations.Table, id)
}

func (repository *PostgresRepository) ListReservations(context context.Context) ([]Reservation, error) {
	return store.List[Reservation](context, repository.db, schema.Reservations.Table)
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]Reservation, error) {
	return store.ListWhere[Reservation](context, repository.db, schema.Reservations.Table, schema.Reservations.UserID, userID)
}

func (repository *PostgresRepository) UpdateReservation(context context.Context, id int64, r ForUpdate) error {
	return store.UpdateByID(context, repository.db, schema.Reservations.Table, id, r.Fields())
}
