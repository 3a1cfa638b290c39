package review

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

func (repository *PostgresRepository) CreateReview(context context.Context, r ForCreate) (int64, error) {
	return store.Create(context, repository.db, schema.Reviews.Table, r.Fields())
}

func (repository *PostgresRepository) GetReview(context context.Context, id int64) (*Review, error) {
	return store.Get[Review](context, repository.db, schema.Reviews.Table, id)
}

func (repository *PostgresRepository) ListReviews(context context.Context) ([]Review, error) {
	return store.List[Review](context, repository.db, schema.Reviews.Table)
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int64) ([]Review, error) {
	return store.ListWhere[Review](context, repository.db, schema.Reviews.Table, schema.Reviews.BookID, bookID)
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]Review, error) {
	return store.ListWhere[Review](context, repository.db, schema.Reviews.Table, schema.Reviews.UserID, userID)
}

func (repository *PostgresRepository) UpdateReview(context context.Context, id int64, r ForUpdate) error {
	return store.UpdateByID(context, repository.db, schema.Reviews.Table, id, r.Fields())
}

func (repository *PostgresRepository) DeleteReview(context context.Context, id int64) error {
	return store.DeleteByID(context, repository.db, schema.Reviews.Table, id)
}
