package review

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
	router.Get("/reviews", handler.listReviews)
	router.Get("/review/{review_id}", handler.getReview)
	router.Post("/book/{book_id}/review", handler.createBookReview)
	router.Get("/book/{book_id}/reviews", handler.listBookReviews)
	router.Get("/user/reviews", handler.listCurrentUserReviews)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

		staffRoute.Post("/review", handler.createReview)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/review/{review_id}", handler.updateReview)
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/review/{review_id}", handler.deleteReview)
	})
}

func (handler *Handler) createBookReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.UserID = userID
	input.BookID = bookID

	if _, err := handler.service.CreateReview(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.M{"message": "Review added"})
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.UserID = userID

	if _, err := handler.service.CreateReview(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.M{"message": "Review added"})
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "review_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"review": result})
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	reviews, err := handler.service.ListReviews(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"reviews": reviews})
}

func (handler *Handler) listBookReviews(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "book_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListByBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"reviews": reviews})
}

func (handler *Handler) listCurrentUserReviews(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"reviews": reviews})
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "review_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateReview(request.Context(), reviewID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Review updated")
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "review_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
