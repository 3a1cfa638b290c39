package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlamduy/libris/internal/core/book"
	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/store"
)

// fakeRepository records the last payload seen per operation.
type fakeRepository struct {
	createdBook  *book.BookForCreate
	borrowedDue  time.Time
	borrowCalled bool
}

func (f *fakeRepository) CreateBook(_ context.Context, b book.BookForCreate) (int64, error) {
	f.createdBook = &b
	return 1, nil
}

func (f *fakeRepository) GetBook(_ context.Context, id int64) (*book.Book, error) {
	return &book.Book{ID: id}, nil
}

func (f *fakeRepository) ListBooks(_ context.Context) ([]book.Book, error) { return nil, nil }

func (f *fakeRepository) UpdateBook(_ context.Context, id int64, b book.BookForUpdate) error {
	return nil
}

func (f *fakeRepository) AddCopy(_ context.Context, c book.CopyForCreate) (int64, error) {
	return 1, nil
}

func (f *fakeRepository) GetCopy(_ context.Context, copyID, bookID int64) (*book.BookCopy, error) {
	return &book.BookCopy{ID: copyID, BookID: bookID}, nil
}

func (f *fakeRepository) ListCopies(_ context.Context, bookID int64) ([]book.BookCopy, error) {
	return nil, nil
}

func (f *fakeRepository) UpdateCopy(_ context.Context, copyID, bookID int64, c book.CopyForUpdate) error {
	return nil
}

func (f *fakeRepository) BorrowCopy(_ context.Context, copyID, bookID, userID int64, dueDate time.Time) (int64, error) {
	f.borrowCalled = true
	f.borrowedDue = dueDate
	return 7, nil
}

func newTestService(t *testing.T) (*book.Service, *fakeRepository) {
	t.Helper()
	repo := &fakeRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(repo, logger), repo
}

func validCreate() book.BookForCreate {
	return book.BookForCreate{
		Title:  "The Dispossessed",
		Author: "Ursula K. Le Guin",
		ISBN:   "9780061054884",
		Count:  3,
	}
}

/*
TestCreateBook_Validation rejects malformed catalog entries.
*/
func TestCreateBook_Validation(t *testing.T) {
	badYear := 12000

	tests := []struct {
		name   string
		mutate func(*book.BookForCreate)
	}{
		{"missing_title", func(b *book.BookForCreate) { b.Title = "" }},
		{"missing_author", func(b *book.BookForCreate) { b.Author = "" }},
		{"missing_isbn", func(b *book.BookForCreate) { b.ISBN = "" }},
		{"negative_count", func(b *book.BookForCreate) { b.Count = -1 }},
		{"implausible_year", func(b *book.BookForCreate) { b.Year = &badYear }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			input := validCreate()
			tt.mutate(&input)

			_, err := service.CreateBook(context.Background(), input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Nil(t, repo.createdBook)
		})
	}
}

/*
TestCreateBook passes a valid payload through, copies count included.
*/
func TestCreateBook(t *testing.T) {
	service, repo := newTestService(t)

	id, err := service.CreateBook(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NotNil(t, repo.createdBook)
	assert.Equal(t, 3, repo.createdBook.Count)
}

/*
TestBorrowCopy stamps the due date one loan period out.
*/
func TestBorrowCopy(t *testing.T) {
	service, repo := newTestService(t)

	before := time.Now().UTC().Add(7 * 24 * time.Hour)
	require.NoError(t, service.BorrowCopy(context.Background(), 9, 4, 2))
	after := time.Now().UTC().Add(7 * 24 * time.Hour)

	assert.True(t, repo.borrowCalled)
	assert.False(t, repo.borrowedDue.Before(before))
	assert.False(t, repo.borrowedDue.After(after))
}

/*
TestUpdateCopy_StatusValidation rejects statuses outside the closed set.
*/
func TestUpdateCopy_StatusValidation(t *testing.T) {
	service, _ := newTestService(t)

	bogus := book.CopyStatus("lost")
	err := service.UpdateCopy(context.Background(), 1, 1, book.CopyForUpdate{Status: &bogus})
	require.Error(t, err)

	ok := book.StatusReserved
	assert.NoError(t, service.UpdateCopy(context.Background(), 1, 1, book.CopyForUpdate{Status: &ok}))
}

/*
TestParseCopyStatus accepts exactly the closed status set.
*/
func TestParseCopyStatus(t *testing.T) {
	for _, valid := range []string{"available", "borrowed", "reserved"} {
		status, err := book.ParseCopyStatus(valid)
		require.NoError(t, err)
		assert.True(t, status.Valid())
	}

	for _, invalid := range []string{"", "lost", "Available"} {
		_, err := book.ParseCopyStatus(invalid)
		assert.Error(t, err)
	}
}

/*
TestBookForCreate_Fields omits absent optional columns and never includes
the copy count.
*/
func TestBookForCreate_Fields(t *testing.T) {
	fields := validCreate().Fields()
	assert.Equal(t, []string{"title", "author", "isbn"}, fields.Columns())

	category := "science fiction"
	year := 1974
	input := validCreate()
	input.Category = &category
	input.Year = &year

	fields = input.Fields()
	assert.Equal(t, []string{"title", "author", "isbn", "category", "year"}, fields.Columns())
}

/*
TestBookForUpdate_Fields is sparse: only provided attributes render.
*/
func TestBookForUpdate_Fields(t *testing.T) {
	assert.Empty(t, book.BookForUpdate{}.Fields())

	title := "Renamed"
	fields := book.BookForUpdate{Title: &title}.Fields()
	assert.Equal(t, []string{"title"}, fields.Columns())
}

/*
TestCopyForCreate_Fields shelves new copies as available.
*/
func TestCopyForCreate_Fields(t *testing.T) {
	fields := book.CopyForCreate{BookID: 4}.Fields()

	assert.Equal(t, []string{"book_id", "status"}, fields.Columns())
	assert.Contains(t, fields, store.Field{Column: "status", Value: book.StatusAvailable})
}
