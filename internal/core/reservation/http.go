package reservation

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
	router.Get("/reservations", handler.listReservations)
	router.Get("/reservation/{reservation_id}", handler.getReservation)
	router.Get("/user/reservations", handler.listCurrentUserReservations)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

		staffRoute.Post("/reservation", handler.createReservation)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/reservation/{reservation_id}", handler.updateReservation)
	})
}

func (handler *Handler) createReservation(writer http.ResponseWriter, request *http.Request) {
	var input ForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.CreateReservation(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.M{"message": "Reservation added"})
}

func (handler *Handler) getReservation(writer http.ResponseWriter, request *http.Request) {
	reservationID, err := requestutil.ID(request, "reservation_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetReservation(request.Context(), reservationID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"reservation": result})
}

func (handler *Handler) listReservations(writer http.ResponseWriter, request *http.Request) {
	reservations, err := handler.service.ListReservations(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"reservations": reservations})
}

func (handler *Handler) listCurrentUserReservations(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reservations, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"reservations": reservations})
}

func (handler *Handler) updateReservation(writer http.ResponseWriter, request *http.Request) {
	reservationID, err := requestutil.ID(request, "reservation_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateReservation(request.Context(), reservationID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Reservation updated")
}
