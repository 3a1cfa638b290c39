package category

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

func (service *Service) CreateCategory(context context.Context, input ForCreate) (int64, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)

	if err := validator.Err(); err != nil {
		return 0, err
	}

	id, err := service.repo.CreateCategory(context, input)
	if err != nil {
		return 0, err
	}

	service.logger.Info("category_created",
		slog.Int64("category_id", id),
		slog.String("name", input.Name),
	)
	return id, nil
}

func (service *Service) GetCategory(context context.Context, id int64) (*Category, error) {
	return service.repo.GetCategory(context, id)
}

func (service *Service) ListCategories(context context.Context) ([]Category, error) {
	return service.repo.ListCategories(context)
}

func (service *Service) UpdateCategory(context context.Context, id int64, input ForUpdate) error {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 100)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateCategory(context, id, input); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.Int64("category_id", id))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, id int64) error {
	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.Int64("category_id", id))
	return nil
}
