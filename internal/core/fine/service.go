package fine

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

func (service *Service) CreateFine(context context.Context, input ForCreate) (int64, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldTransactionID, input.TransactionID)
	validator.Custom(FieldFineAmount, input.FineAmount <= 0, "Must be a positive amount")

	if err := validator.Err(); err != nil {
		return 0, err
	}

	id, err := service.repo.CreateFine(context, input)
	if err != nil {
		return 0, err
	}

	service.logger.Info("fine_created",
		slog.Int64("fine_id", id),
		slog.Int64("transaction_id", input.TransactionID),
		slog.Float64("amount", input.FineAmount),
	)
	return id, nil
}

func (service *Service) GetFine(context context.Context, id int64) (*Fine, error) {
	return service.repo.GetFine(context, id)
}

func (service *Service) ListFines(context context.Context) ([]Fine, error) {
	return service.repo.ListFines(context)
}

func (service *Service) ListUnpaid(context context.Context) ([]Fine, error) {
	return service.repo.ListUnpaid(context)
}

func (service *Service) UpdateFine(context context.Context, id int64, input ForUpdate) error {
	if input.FineAmount != nil && *input.FineAmount <= 0 {
		return validate.RequiredError(FieldFineAmount, "Must be a positive amount")
	}

	if err := service.repo.UpdateFine(context, id, input); err != nil {
		return err
	}

	service.logger.Info("fine_updated", slog.Int64("fine_id", id))
	return nil
}
