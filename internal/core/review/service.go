package review

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

func (service *Service) CreateReview(context context.Context, input ForCreate) (int64, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldBookID, input.BookID)
	validator.Range(FieldRating, input.Rating, 1, 5)
	validator.Required(FieldReviewText, input.ReviewText).MaxLen(FieldReviewText, input.ReviewText, 5000)

	if err := validator.Err(); err != nil {
		return 0, err
	}

	id, err := service.repo.CreateReview(context, input)
	if err != nil {
		return 0, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", id),
		slog.Int64("book_id", input.BookID),
		slog.Int64("user_id", input.UserID),
	)
	return id, nil
}

func (service *Service) GetReview(context context.Context, id int64) (*Review, error) {
	return service.repo.GetReview(context, id)
}

func (service *Service) ListReviews(context context.Context) ([]Review, error) {
	return service.repo.ListReviews(context)
}

func (service *Service) ListByBook(context context.Context, bookID int64) ([]Review, error) {
	return service.repo.ListByBook(context, bookID)
}

func (service *Service) ListByUser(context context.Context, userID int64) ([]Review, error) {
	return service.repo.ListByUser(context, userID)
}

func (service *Service) UpdateReview(context context.Context, id int64, input ForUpdate) error {
	validator := &validate.Validator{}
	if input.Rating != nil {
		validator.Range(FieldRating, *input.Rating, 1, 5)
	}
	if input.ReviewText != nil {
		validator.Required(FieldReviewText, *input.ReviewText).MaxLen(FieldReviewText, *input.ReviewText, 5000)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateReview(context, id, input); err != nil {
		return err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", id))
	return nil
}

func (service *Service) DeleteReview(context context.Context, id int64) error {
	if err := service.repo.DeleteReview(context, id); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.Int64("review_id", id))
	return nil
}
