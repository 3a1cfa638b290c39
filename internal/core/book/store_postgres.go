package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

type PostgresRepository struct {
	db store.DB
}

func NewPostgresRepository(db store.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CreateBook(context context.Context, b BookForCreate) (int64, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("book: begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback(context) }()

	bookID, err := store.Create(context, tx, schema.Books.Table, b.Fields())
	if err != nil {
		return 0, err
	}

	// Shelve the requested number of copies with the same fate as the title.
	for i := 0; i < b.Count; i++ {
		copyFields := CopyForCreate{BookID: bookID}.Fields()
		if _, err := store.Create(context, tx, schema.BookCopies.Table, copyFields); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(context); err != nil {
		return 0, apperr.Internal(fmt.Errorf("book: commit tx: %w", err))
	}
	return bookID, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id int64) (*Book, error) {
	return store.Get[Book](context, repository.db, schema.Books.Table, id)
}

func (repository *PostgresRepository) ListBooks(context context.Context) ([]Book, error) {
	return store.List[Book](context, repository.db, schema.Books.Table)
}

func (repository *PostgresRepository) UpdateBook(context context.Context, id int64, b BookForUpdate) error {
	return store.UpdateByID(context, repository.db, schema.Books.Table, id, b.Fields())
}

func (repository *PostgresRepository) AddCopy(context context.Context, c CopyForCreate) (int64, error) {
	return store.Create(context, repository.db, schema.BookCopies.Table, c.Fields())
}

func (repository *PostgresRepository) GetCopy(context context.Context, copyID, bookID int64) (*BookCopy, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1 AND %s = $2`,
		schema.BookCopies.Table, schema.BookCopies.ID, schema.BookCopies.BookID,
	)

	rows, err := repository.db.Query(context, query, copyID, bookID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("book: get copy: %w", err))
	}

	copyRow, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[BookCopy])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.EntityNotFound(schema.BookCopies.Table, copyID)
		}
		return nil, apperr.Internal(fmt.Errorf("book: get copy: %w", err))
	}
	return copyRow, nil
}

func (repository *PostgresRepository) ListCopies(context context.Context, bookID int64) ([]BookCopy, error) {
	return store.ListWhere[BookCopy](context, repository.db, schema.BookCopies.Table, schema.BookCopies.BookID, bookID)
}

func (repository *PostgresRepository) UpdateCopy(context context.Context, copyID, bookID int64, c CopyForUpdate) error {
	where := fmt.Sprintf("%s = $1 AND %s = $2", schema.BookCopies.ID, schema.BookCopies.BookID)

	affected, err := store.UpdateWhere(context, repository.db, schema.BookCopies.Table, c.Fields(), where, copyID, bookID)
	if err != nil {
		return err
	}
	return store.ClassifyAffected(affected, schema.BookCopies.Table, copyID)
}

// BorrowCopy claims the copy with a conditional transition and records the
// loan, both inside one transaction.
//
// The UPDATE only matches while the copy is still available; rows-affected
// zero therefore means either "no such copy" or "someone else got it first",
// disambiguated by a follow-up read inside the same transaction.
func (repository *PostgresRepository) BorrowCopy(context context.Context, copyID, bookID, userID int64, dueDate time.Time) (int64, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("book: begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback(context) }()

	// ── 1. Conditional Claim ──────────────────────────────────────────────
	claim := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3 AND %s = $4`,
		schema.BookCopies.Table, schema.BookCopies.Status,
		schema.BookCopies.ID, schema.BookCopies.BookID, schema.BookCopies.Status,
	)

	tag, err := tx.Exec(context, claim, StatusBorrowed, copyID, bookID, StatusAvailable)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("book: claim copy: %w", err))
	}

	if tag.RowsAffected() == 0 {
		// Lost the race, or the copy never existed. Tell them apart.
		existsQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 AND %s = $2`,
			schema.BookCopies.Table, schema.BookCopies.ID, schema.BookCopies.BookID,
		)

		var one int
		if err := tx.QueryRow(context, existsQuery, copyID, bookID).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, apperr.EntityNotFound(schema.BookCopies.Table, copyID)
			}
			return 0, apperr.Internal(fmt.Errorf("book: check copy: %w", err))
		}
		return 0, apperr.Conflict("Book copy is not available")
	}

	// ── 2. Loan Record ────────────────────────────────────────────────────
	borrowingFields := store.Fields{}.
		Set(schema.Borrowings.UserID, userID).
		Set(schema.Borrowings.BookID, bookID).
		Set(schema.Borrowings.CopyID, copyID).
		Set(schema.Borrowings.DueDate, dueDate)

	borrowingID, err := store.Create(context, tx, schema.Borrowings.Table, borrowingFields)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(context); err != nil {
		return 0, apperr.Internal(fmt.Errorf("book: commit tx: %w", err))
	}
	return borrowingID, nil
}
