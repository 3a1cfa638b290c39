package book

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
	// Any authenticated user
	router.Get("/book", handler.listBooks)
	router.Get("/books", handler.listBooks)
	router.Get("/book/{book_id}", handler.getBook)
	// The bundled frontend triggers borrowing with a plain link, hence GET.
	router.Get("/book/{book_id}/copy/{copy_id}/borrow", handler.borrowCopy)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

		staffRoute.Post("/book", handler.createBook)
		staffRoute.Post("/book/{book_id}/copy", handler.addCopy)
		staffRoute.Get("/book/{book_id}/copy", handler.listCopies)
		staffRoute.Get("/book/{book_id}/copy/{copy_id}", handler.getCopy)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/book/{book_id}", handler.updateBook)
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/book/{book_id}/copy/{copy_id}", handler.updateCopy)
	})
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input BookForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.CreateBook(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, respond.M{"book_id": id})
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"book": result})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"books": books})
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BookForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), bookID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Book updated")
}

func (handler *Handler) addCopy(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CopyForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.BookID = bookID

	id, err := handler.service.AddCopy(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, respond.M{"copy_id": id})
}

func (handler *Handler) getCopy(writer http.ResponseWriter, request *http.Request) {
	bookID, copyID, err := copyParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetCopy(request.Context(), copyID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"copy": result})
}

func (handler *Handler) listCopies(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copies, err := handler.service.ListCopies(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"copies": copies})
}

func (handler *Handler) updateCopy(writer http.ResponseWriter, request *http.Request) {
	bookID, copyID, err := copyParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CopyForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCopy(request.Context(), copyID, bookID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Book copy updated")
}

func (handler *Handler) borrowCopy(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, copyID, err := copyParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.BorrowCopy(request.Context(), copyID, bookID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Book borrowed")
}

// copyParams extracts the composite (book_id, copy_id) route key.
func copyParams(request *http.Request) (bookID, copyID int64, err error) {
	bookID, err = requestutil.ID(request, "book_id")
	if err != nil {
		return 0, 0, err
	}
	copyID, err = requestutil.ID(request, "copy_id")
	if err != nil {
		return 0, 0, err
	}
	return bookID, copyID, nil
}
