package borrowing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nlamduy/libris/internal/platform/middleware"
	requestutil "github.com/nlamduy/libris/internal/platform/request"
	"github.com/nlamduy/libris/internal/platform/respond"
	"github.com/nlamduy/libris/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Any authenticated user sees their own loans
	router.Get("/borrowings", handler.listCurrentUserBorrowings)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

		staffRoute.Get("/borrowing/{borrowing_id}", handler.getBorrowing)
		staffRoute.Get("/borrowings/status/{status}", handler.listBorrowingsByStatus)
		staffRoute.Get("/book/{book_id}/borrowings", handler.listBookBorrowings)
		staffRoute.Get("/book/{book_id}/copy/{copy_id}/borrowings", handler.listCopyBorrowings)
		staffRoute.Post("/borrowing/{borrowing_id}/return", handler.returnBorrowing)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/borrowing/{borrowing_id}", handler.updateBorrowing)
	})
}

func (handler *Handler) getBorrowing(writer http.ResponseWriter, request *http.Request) {
	borrowingID, err := requestutil.ID(request, "borrowing_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetBorrowing(request.Context(), borrowingID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"borrowing": result})
}

func (handler *Handler) listCurrentUserBorrowings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	borrowings, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"borrowings": borrowings})
}

func (handler *Handler) listBookBorrowings(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	borrowings, err := handler.service.ListByBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"borrowings": borrowings})
}

func (handler *Handler) listBorrowingsByStatus(writer http.ResponseWriter, request *http.Request) {
	borrowings, err := handler.service.ListByStatus(request.Context(), Status(requestutil.Param(request, "status")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"borrowings": borrowings})
}

func (handler *Handler) listCopyBorrowings(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	copyID, err := requestutil.ID(request, "copy_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	borrowings, err := handler.service.ListByBookCopy(request.Context(), bookID, copyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"borrowings": borrowings})
}

func (handler *Handler) updateBorrowing(writer http.ResponseWriter, request *http.Request) {
	borrowingID, err := requestutil.ID(request, "borrowing_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBorrowing(request.Context(), borrowingID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Borrowing updated")
}

func (handler *Handler) returnBorrowing(writer http.ResponseWriter, request *http.Request) {
	borrowingID, err := requestutil.ID(request, "borrowing_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReturnBorrowing(request.Context(), borrowingID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Book returned")
}
