package category

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
	router.Get("/categories", handler.listCategories)
	router.Get("/category/{category_id}", handler.getCategory)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

		staffRoute.Post("/category", handler.createCategory)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/category/{category_id}", handler.updateCategory)
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/category/{category_id}", handler.deleteCategory)
	})
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input ForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.CreateCategory(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.M{"message": "Category added"})
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"category": result})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"categories": categories})
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCategory(request.Context(), categoryID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Category updated")
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ID(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
