package borrowing

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

func (repository *PostgresRepository) GetBorrowing(context context.Context, id int64) (*Borrowing, error) {
	return store.Get[Borrowing](context, repository.db, schema.Borrowings.Table, id)
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]Borrowing, error) {
	return store.ListWhere[Borrowing](context, repository.db, schema.Borrowings.Table, schema.Borrowings.UserID, userID)
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID int64) ([]Borrowing, error) {
	return store.ListWhere[Borrowing](context, repository.db, schema.Borrowings.Table, schema.Borrowings.BookID, bookID)
}

func (repository *PostgresRepository) ListByStatus(context context.Context, status Status) ([]Borrowing, error) {
	return store.ListWhere[Borrowing](context, repository.db, schema.Borrowings.Table, schema.Borrowings.Status, status)
}

func (repository *PostgresRepository) ListByBookCopy(context context.Context, bookID, copyID int64) ([]Borrowing, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Borrowings.Table, schema.Borrowings.BookID, schema.Borrowings.CopyID,
	)

	rows, err := repository.db.Query(context, query, bookID, copyID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("borrowing: list by book copy: %w", err))
	}

	borrowings, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[Borrowing])
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("borrowing: list by book copy: %w", err))
	}
	return borrowings, nil
}

func (repository *PostgresRepository) UpdateBorrowing(context context.Context, id int64, b ForUpdate) error {
	return store.UpdateByID(context, repository.db, schema.Borrowings.Table, id, b.Fields())
}

// ReturnBorrowing marks the loan returned and flips its copy back to
// available, atomically. Returning an already-closed loan is a conflict.
func (repository *PostgresRepository) ReturnBorrowing(context context.Context, id int64) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return apperr.Internal(fmt.Errorf("borrowing: begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback(context) }()

	// ── 1. Close the Loan ─────────────────────────────────────────────────
	closeLoan := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2
		WHERE %s = $3 AND %s = ANY($4)
		RETURNING %s
	`,
		schema.Borrowings.Table, schema.Borrowings.Status, schema.Borrowings.ReturnDate,
		schema.Borrowings.ID, schema.Borrowings.Status,
		schema.Borrowings.CopyID,
	)

	var copyID int64
	openStatuses := []Status{StatusBorrowed, StatusLate}
	err = tx.QueryRow(context, closeLoan, StatusReturned, time.Now().UTC(), id, openStatuses).Scan(&copyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Loan missing or already returned; read once more to tell which.
			var status Status
			probe := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
				schema.Borrowings.Status, schema.Borrowings.Table, schema.Borrowings.ID)
			if probeErr := tx.QueryRow(context, probe, id).Scan(&status); probeErr != nil {
				return apperr.EntityNotFound(schema.Borrowings.Table, id)
			}
			return apperr.Conflict("Borrowing already returned")
		}
		return apperr.Internal(fmt.Errorf("borrowing: close loan: %w", err))
	}

	// ── 2. Free the Copy ──────────────────────────────────────────────────
	freeCopy := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.BookCopies.Table, schema.BookCopies.Status, schema.BookCopies.ID,
	)

	tag, err := tx.Exec(context, freeCopy, "available", copyID)
	if err != nil {
		return apperr.Internal(fmt.Errorf("borrowing: free copy: %w", err))
	}
	if classifyErr := store.ClassifyAffected(tag.RowsAffected(), schema.BookCopies.Table, copyID); classifyErr != nil {
		return classifyErr
	}

	if err := tx.Commit(context); err != nil {
		return apperr.Internal(fmt.Errorf("borrowing: commit tx: %w", err))
	}
	return nil
}
