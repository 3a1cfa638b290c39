package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/sec"
	"github.com/nlamduy/libris/internal/platform/store"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CreateUser(context context.Context, u UserForCreate, hashedPassword string, role sec.Role) (int64, error) {
	return store.Create(context, repository.db, schema.Users.Table, u.Fields(hashedPassword, role))
}

func (repository *PostgresRepository) GetUser(context context.Context, id int64) (*User, error) {
	return store.Get[User](context, repository.db, schema.Users.Table, id)
}

func (repository *PostgresRepository) GetUserByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1`, schema.Users.Table, schema.Users.Username)

	rows, err := repository.db.Query(context, query, username)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("users: get by username: %w", err))
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(fmt.Errorf("users: get by username: %w", err))
	}
	return user, nil
}

func (repository *PostgresRepository) ListUsers(context context.Context) ([]User, error) {
	return store.List[User](context, repository.db, schema.Users.Table)
}

func (repository *PostgresRepository) UpdateUser(context context.Context, id int64, u UserForUpdate, hashedPassword *string) error {
	return store.UpdateByID(context, repository.db, schema.Users.Table, id, u.Fields(hashedPassword))
}

func (repository *PostgresRepository) DeleteUser(context context.Context, id int64) error {
	return store.DeleteByID(context, repository.db, schema.Users.Table, id)
}

func (repository *PostgresRepository) CountUsers(context context.Context) (int64, error) {
	return store.Count(context, repository.db, schema.Users.Table)
}
