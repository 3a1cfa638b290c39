package borrowing

import (
	"context"
	"log/slog"

	"github.com/nlamduy/libris/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) GetBorrowing(context context.Context, id int64) (*Borrowing, error) {
	return service.repo.GetBorrowing(context, id)
}

func (service *Service) ListByUser(context context.Context, userID int64) ([]Borrowing, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) ListByBook(context context.Context, bookID int64) ([]Borrowing, error) {
	return service.repo.ListByBook(context, bookID)
}

func (service *Service) ListByStatus(context context.Context, status Status) ([]Borrowing, error) {
	if !status.Valid() {
		return nil, validate.RequiredError(FieldStatus, "Must be one of: borrowed, returned, late")
	}
	return service.repo.ListByStatus(context, status)
}

func (service *Service) ListByBookCopy(context context.Context, bookID, copyID int64) ([]Borrowing, error) {
	return service.repo.ListByBookCopy(context, bookID, copyID)
}

func (service *Service) UpdateBorrowing(context context.Context, id int64, input ForUpdate) error {
	if input.Status != nil && !input.Status.Valid() {
		return validate.RequiredError(FieldStatus, "Must be one of: borrowed, returned, late")
	}

	if err := service.repo.UpdateBorrowing(context, id, input); err != nil {
		return err
	}

	service.logger.Info("borrowing_updated", slog.Int64("borrowing_id", id))
	return nil
}

// ReturnBorrowing closes a loan and releases its copy back into circulation.
func (service *Service) ReturnBorrowing(context context.Context, id int64) error {
	if err := service.repo.ReturnBorrowing(context, id); err != nil {
		return err
	}

	service.logger.Info("borrowing_returned", slog.Int64("borrowing_id", id))
	return nil
}
