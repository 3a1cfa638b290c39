package book_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlamduy/libris/internal/core/book"
	"github.com/nlamduy/libris/internal/platform/apperr"
)

// statement is one recorded SQL invocation.
type statement struct {
	sql  string
	args []any
}

// scriptedRow serves the next Scan with a scripted id or error.
type scriptedRow struct {
	id  int64
	err error
}

func (r *scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for _, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = r.id
		case *int:
			*v = int(r.id)
		}
	}
	return nil
}

// scriptedTx implements [pgx.Tx] over queues of canned results, recording
// every statement it sees. Exec pops from execTags, QueryRow from rows.
type scriptedTx struct {
	execTags []pgconn.CommandTag
	rows     []*scriptedRow

	execs     []statement
	rowStmts  []statement
	committed bool
	rolled    bool
}

func (t *scriptedTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, statement{sql: sql, args: args})
	if len(t.execTags) == 0 {
		return pgconn.CommandTag{}, errors.New("unscripted exec: " + sql)
	}
	tag := t.execTags[0]
	t.execTags = t.execTags[1:]
	return tag, nil
}

func (t *scriptedTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.rowStmts = append(t.rowStmts, statement{sql: sql, args: args})
	if len(t.rows) == 0 {
		return &scriptedRow{err: errors.New("unscripted query row: " + sql)}
	}
	row := t.rows[0]
	t.rows = t.rows[1:]
	return row
}

func (t *scriptedTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("unscripted query: " + sql)
}

func (t *scriptedTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *scriptedTx) Rollback(context.Context) error { t.rolled = true; return nil }

func (t *scriptedTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }
func (t *scriptedTx) Conn() *pgx.Conn                       { return nil }
func (t *scriptedTx) LargeObjects() pgx.LargeObjects        { return pgx.LargeObjects{} }

func (t *scriptedTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("unscripted copy from")
}

func (t *scriptedTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *scriptedTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("unscripted prepare")
}

// scriptedDB hands out a single scriptedTx and rejects non-transactional use.
type scriptedDB struct {
	tx *scriptedTx
}

func (d *scriptedDB) Begin(context.Context) (pgx.Tx, error) { return d.tx, nil }

func (d *scriptedDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unscripted pool exec: " + sql)
}

func (d *scriptedDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("unscripted pool query: " + sql)
}

func (d *scriptedDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	return &scriptedRow{err: errors.New("unscripted pool query row: " + sql)}
}

/*
TestCreateBook_ShelvesCountCopies inserts the title and exactly Count
copies, all of them available, inside one committed transaction.
*/
func TestCreateBook_ShelvesCountCopies(t *testing.T) {
	tx := &scriptedTx{rows: []*scriptedRow{{id: 42}, {id: 101}, {id: 102}, {id: 103}}}
	repository := book.NewPostgresRepository(&scriptedDB{tx: tx})

	bookID, err := repository.CreateBook(context.Background(), book.BookForCreate{
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin",
		ISBN:   "978-0441478125",
		Count:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), bookID)
	assert.True(t, tx.committed)

	// One title insert followed by one insert per requested copy.
	require.Len(t, tx.rowStmts, 4)
	assert.Contains(t, tx.rowStmts[0].sql, "INSERT INTO books")

	for _, stmt := range tx.rowStmts[1:] {
		assert.Equal(t, "INSERT INTO book_copies (book_id, status) VALUES ($1, $2) RETURNING id", stmt.sql)
		assert.Equal(t, []any{int64(42), book.StatusAvailable}, stmt.args)
	}
}

/*
TestCreateBook_CopyInsertFailureRollsBack leaves nothing committed when a
copy insert fails partway through the batch.
*/
func TestCreateBook_CopyInsertFailureRollsBack(t *testing.T) {
	tx := &scriptedTx{rows: []*scriptedRow{
		{id: 42},
		{id: 101},
		{err: errors.New("connection reset")},
	}}
	repository := book.NewPostgresRepository(&scriptedDB{tx: tx})

	_, err := repository.CreateBook(context.Background(), book.BookForCreate{
		Title:  "Dune",
		Author: "Frank Herbert",
		ISBN:   "978-0441013593",
		Count:  3,
	})
	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolled)
}

/*
TestBorrowCopy_ClaimsAvailableCopy flips the copy to borrowed with a
conditional update and records the loan in the same transaction.
*/
func TestBorrowCopy_ClaimsAvailableCopy(t *testing.T) {
	tx := &scriptedTx{
		execTags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 1")},
		rows:     []*scriptedRow{{id: 77}},
	}
	repository := book.NewPostgresRepository(&scriptedDB{tx: tx})

	dueDate := time.Now().Add(7 * 24 * time.Hour)
	borrowingID, err := repository.BorrowCopy(context.Background(), 5, 42, 9, dueDate)
	require.NoError(t, err)
	assert.Equal(t, int64(77), borrowingID)
	assert.True(t, tx.committed)

	// The claim only matches while the copy is still available, so a lost
	// race shows up as zero rows affected instead of a double borrow.
	require.Len(t, tx.execs, 1)
	assert.Equal(t,
		"UPDATE book_copies SET status = $1 WHERE id = $2 AND book_id = $3 AND status = $4",
		tx.execs[0].sql,
	)
	assert.Equal(t, []any{book.StatusBorrowed, int64(5), int64(42), book.StatusAvailable}, tx.execs[0].args)

	require.Len(t, tx.rowStmts, 1)
	assert.Contains(t, tx.rowStmts[0].sql, "INSERT INTO borrowings")
}

/*
TestBorrowCopy_NotAvailable conflicts (409) when the copy exists but has
already been claimed: zero rows affected, then the existence check finds it.
*/
func TestBorrowCopy_NotAvailable(t *testing.T) {
	tx := &scriptedTx{
		execTags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 0")},
		rows:     []*scriptedRow{{id: 1}},
	}
	repository := book.NewPostgresRepository(&scriptedDB{tx: tx})

	_, err := repository.BorrowCopy(context.Background(), 5, 42, 9, time.Now())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
	assert.Equal(t, "Book copy is not available", ae.Message)

	// Only the existence check ran; no loan was recorded and nothing committed.
	require.Len(t, tx.rowStmts, 1)
	assert.Equal(t, "SELECT 1 FROM book_copies WHERE id = $1 AND book_id = $2", tx.rowStmts[0].sql)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolled)
}

/*
TestBorrowCopy_MissingCopy reports 404 when zero rows were affected because
the copy never existed under that book.
*/
func TestBorrowCopy_MissingCopy(t *testing.T) {
	tx := &scriptedTx{
		execTags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 0")},
		rows:     []*scriptedRow{{err: pgx.ErrNoRows}},
	}
	repository := book.NewPostgresRepository(&scriptedDB{tx: tx})

	_, err := repository.BorrowCopy(context.Background(), 5, 42, 9, time.Now())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 404, ae.HTTPStatus)
	assert.False(t, tx.committed)
}
