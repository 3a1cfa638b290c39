package fine

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
	router.Get("/fines", handler.listFines)
	router.Get("/fine/{fine_id}", handler.getFine)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

		staffRoute.Post("/fine", handler.createFine)
		staffRoute.Get("/fines/unpaid", handler.listUnpaidFines)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/fine/{fine_id}", handler.updateFine)
	})
}

func (handler *Handler) createFine(writer http.ResponseWriter, request *http.Request) {
	var input ForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.CreateFine(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.M{"message": "Fine added"})
}

func (handler *Handler) getFine(writer http.ResponseWriter, request *http.Request) {
	fineID, err := requestutil.ID(request, "fine_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetFine(request.Context(), fineID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"fine": result})
}

func (handler *Handler) listFines(writer http.ResponseWriter, request *http.Request) {
	fines, err := handler.service.ListFines(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"fines": fines})
}

func (handler *Handler) listUnpaidFines(writer http.ResponseWriter, request *http.Request) {
	fines, err := handler.service.ListUnpaid(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"fines": fines})
}

func (handler *Handler) updateFine(writer http.ResponseWriter, request *http.Request) {
	fineID, err := requestutil.ID(request, "fine_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateFine(request.Context(), fineID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Fine updated")
}
