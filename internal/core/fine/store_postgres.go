package fine

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

func (repository *PostgresRepository) CreateFine(context context.Context, f ForCreate) (int64, error) {
	return store.Create(context, repository.db, schema.Fines.Table, f.Fields())
}

func (repository *PostgresRepository) GetFine(context context.Context, id int64) (*Fine, error) {
	return store.Get[Fine](context, repository.db, schema.Fines.Table, id)
}

func (repository *PostgresRepository) ListFines(context context.Context) ([]Fine, error) {
	return store.List[Fine](context, repository.db, schema.Fines.Table)
}

func (repository *PostgresRepository) ListUnpaid(context context.Context) ([]Fine, error) {
	return store.ListWhere[Fine](context, repository.db, schema.Fines.Table, schema.Fines.Paid, false)
}

func (repository *PostgresRepository) UpdateFine(context context.Context, id int64, f ForUpdate) error {
	return store.UpdateByID(context, repository.db, schema.Fines.Table, id, f.Fields())
}
