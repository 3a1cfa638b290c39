package reservation

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

func (service *Service) CreateReservation(context context.Context, input ForCreate) (int64, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldCopyID, input.CopyID)
	validator.Positive(FieldBookID, input.BookID)
	validator.Positive(FieldUserID, input.UserID)

	if err := validator.Err(); err != nil {
		return 0, err
	}

	id, err := service.repo.CreateReservation(context, input)
	if err != nil {
		return 0, err
	}

	service.logger.Info("reservation_created",
		slog.Int64("reservation_id", id),
		slog.Int64("user_id", input.UserID),
	)
	return id, nil
}

func (service *Service) GetReservation(context context.Context, id int64) (*Reservation, error) {
	return service.repo.GetReservation(context, id)
}

func (service *Service) ListReservations(context context.Context) ([]Reservation, error) {
	return service.repo.ListReservations(context)
}

func (service *Service) ListByUser(context context.Context, userID int64) ([]Reservation, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) UpdateReservation(context context.Context, id int64, input ForUpdate) error {
	if input.Status != nil && !input.Status.Valid() {
		return validate.RequiredError(FieldStatus, "Must be one of: pending, active, declined, expired, cancelled")
	}

	if err := service.repo.UpdateReservation(context, id, input); err != nil {
		return err
	}

	service.logger.Info("reservation_updated", slog.Int64("reservation_id", id))
	return nil
}
