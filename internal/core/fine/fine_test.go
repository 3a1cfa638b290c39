package fine_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlamduy/libris/internal/core/fine"
	"github.com/nlamduy/libris/internal/platform/apperr"
	"github.com/nlamduy/libris/internal/platform/store"
)

type fakeRepository struct {
	created *fine.ForCreate
	updated *fine.ForUpdate
}

func (f *fakeRepository) CreateFine(_ context.Context, input fine.ForCreate) (int64, error) {
	f.created = &input
	return 1, nil
}

func (f *fakeRepository) GetFine(_ context.Context, id int64) (*fine.Fine, error) {
	return &fine.Fine{ID: id}, nil
}

func (f *fakeRepository) ListFines(_ context.Context) ([]fine.Fine, error)  { return nil, nil }
func (f *fakeRepository) ListUnpaid(_ context.Context) ([]fine.Fine, error) { return nil, nil }

func (f *fakeRepository) UpdateFine(_ context.Context, id int64, input fine.ForUpdate) error {
	f.updated = &input
	return nil
}

func newTestService(t *testing.T) (*fine.Service, *fakeRepository) {
	t.Helper()
	repo := &fakeRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fine.NewService(repo, logger), repo
}

/*
TestCreateFine_Validation rejects non-positive transactions and amounts.
*/
func TestCreateFine_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input fine.ForCreate
	}{
		{"zero_transaction", fine.ForCreate{TransactionID: 0, FineAmount: 5}},
		{"zero_amount", fine.ForCreate{TransactionID: 1, FineAmount: 0}},
		{"negative_amount", fine.ForCreate{TransactionID: 1, FineAmount: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)

			_, err := service.CreateFine(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 400, ae.HTTPStatus)
			assert.Nil(t, repo.created)
		})
	}
}

/*
TestCreateFine passes a valid payload through.
*/
func TestCreateFine(t *testing.T) {
	service, repo := newTestService(t)

	id, err := service.CreateFine(context.Background(), fine.ForCreate{TransactionID: 3, FineAmount: 2.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NotNil(t, repo.created)
	assert.Equal(t, 2.5, repo.created.FineAmount)
}

/*
TestForCreate_Fields always starts a fine unpaid.
*/
func TestForCreate_Fields(t *testing.T) {
	fields := fine.ForCreate{TransactionID: 3, FineAmount: 2.5}.Fields()

	assert.Equal(t, []string{"transaction_id", "fine_amount", "paid"}, fields.Columns())
	assert.Contains(t, fields, store.Field{Column: "paid", Value: false})
}

/*
TestForUpdate_Fields stamps paid_date when a fine is marked paid without an
explicit date, and updated_at on any change.
*/
func TestForUpdate_Fields(t *testing.T) {
	t.Run("empty_payload_renders_nothing", func(t *testing.T) {
		assert.Empty(t, fine.ForUpdate{}.Fields())
	})

	t.Run("paid_without_date_is_stamped", func(t *testing.T) {
		paid := true
		fields := fine.ForUpdate{Paid: &paid}.Fields()

		assert.Equal(t, []string{"paid", "paid_date", "updated_at"}, fields.Columns())
	})

	t.Run("explicit_date_wins", func(t *testing.T) {
		paid := true
		date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		fields := fine.ForUpdate{Paid: &paid, PaidDate: &date}.Fields()

		assert.Equal(t, []string{"paid", "paid_date", "updated_at"}, fields.Columns())
		assert.Contains(t, fields, store.Field{Column: "paid_date", Value: date})
	})

	t.Run("unpaid_is_not_stamped", func(t *testing.T) {
		paid := false
		fields := fine.ForUpdate{Paid: &paid}.Fields()

		assert.Equal(t, []string{"paid", "updated_at"}, fields.Columns())
	})
}
