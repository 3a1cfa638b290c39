package category

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

func (repository *PostgresRepository) CreateCategory(context context.Context, c ForCreate) (int64, error) {
	return store.Create(context, repository.db, schema.Categories.Table, c.Fields())
}

func (repository *PostgresRepository) GetCategory(context context.Context, id int64) (*Category, error) {
	return store.Get[Category](context, repository.db, schema.Categories.Table, id)
}

func (repository *PostgresRepository) ListCategories(context context.Context) ([]Category, error) {
	return store.List[Category](context, repository.db, schema.Categories.Table)
}

func (repository *PostgresRepository) UpdateCategory(context context.Context, id int64, c ForUpdate) error {
	return store.UpdateByID(context, repository.db, schema.Categories.Table, id, c.Fields())
}

func (repository *PostgresRepository) DeleteCategory(context context.Context, id int64) error {
	return store.DeleteByID(context, repository.db, schema.Categories.Table, id)
}
