package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/nlamduy/libris/internal/platform/constants"
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

// CreateBook catalogues a title together with its initial copies.
func (service *Service) CreateBook(context context.Context, input BookForCreate) (int64, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.Required(FieldAuthor, input.Author).MaxLen(FieldAuthor, input.Author, 200)
	validator.Required(FieldISBN, input.ISBN).MaxLen(FieldISBN, input.ISBN, 20)
	validator.Custom(FieldCount, input.Count < 0, "Must not be negative")
	if input.Year != nil {
		validator.Range(FieldYear, *input.Year, 0, time.Now().Year()+1)
	}

	if err := validator.Err(); err != nil {
		return 0, err
	}

	id, err := service.repo.CreateBook(context, input)
	if err != nil {
		return 0, err
	}

	service.logger.Info("book_created",
		slog.Int64("book_id", id),
		slog.Int("copies", input.Count),
	)
	return id, nil
}

func (service *Service) GetBook(context context.Context, id int64) (*Book, error) {
	return service.repo.GetBook(context, id)
}

func (service *Service) ListBooks(context context.Context) ([]Book, error) {
	return service.repo.ListBooks(context)
}

func (service *Service) UpdateBook(context context.Context, id int64, input BookForUpdate) error {
	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 500)
	}
	if input.Author != nil {
		validator.Required(FieldAuthor, *input.Author).MaxLen(FieldAuthor, *input.Author, 200)
	}
	if input.Year != nil {
		validator.Range(FieldYear, *input.Year, 0, time.Now().Year()+1)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateBook(context, id, input); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.Int64("book_id", id))
	return nil
}

func (service *Service) AddCopy(context context.Context, input CopyForCreate) (int64, error) {
	id, err := service.repo.AddCopy(context, input)
	if err != nil {
		return 0, err
	}

	service.logger.Info("book_copy_added",
		slog.Int64("copy_id", id),
		slog.Int64("book_id", input.BookID),
	)
	return id, nil
}

func (service *Service) GetCopy(context context.Context, copyID, bookID int64) (*BookCopy, error) {
	return service.repo.GetCopy(context, copyID, bookID)
}

func (service *Service) ListCopies(context context.Context, bookID int64) ([]BookCopy, error) {
	return service.repo.ListCopies(context, bookID)
}

func (service *Service) UpdateCopy(context context.Context, copyID, bookID int64, input CopyForUpdate) error {
	if input.Status != nil && !input.Status.Valid() {
		return validate.RequiredError(FieldStatus, "Must be one of: available, borrowed, reserved")
	}

	if err := service.repo.UpdateCopy(context, copyID, bookID, input); err != nil {
		return err
	}

	service.logger.Info("book_copy_updated",
		slog.Int64("copy_id", copyID),
		slog.Int64("book_id", bookID),
	)
	return nil
}

// BorrowCopy lends the copy to the calling member for the standard loan
// period.
func (service *Service) BorrowCopy(context context.Context, copyID, bookID, userID int64) error {
	dueDate := time.Now().UTC().Add(constants.DefaultLoanPeriod)

	borrowingID, err := service.repo.BorrowCopy(context, copyID, bookID, userID, dueDate)
	if err != nil {
		return err
	}

	service.logger.Info("book_copy_borrowed",
		slog.Int64("borrowing_id", borrowingID),
		slog.Int64("copy_id", copyID),
		slog.Int64("user_id", userID),
	)
	return nil
}
