package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nlamduy/libris/internal/platform/constants"
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
	// Public
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/users/exists", handler.exists)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/logout", handler.logout)
		authRoute.Get("/user", handler.getCurrentUser)
		authRoute.Put("/user", handler.updateCurrentUser)

		// Staff only
		authRoute.Group(func(staffRoute chi.Router) {
			staffRoute.Use(middleware.RequireRole(sec.RoleIssuer, sec.RoleAdmin))

			staffRoute.Get("/users", handler.listUsers)
			staffRoute.Get("/user/{user_id}", handler.getUser)

			// Admin strict only
			staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Put("/user/{user_id}", handler.updateUser)
			staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/user/{user_id}", handler.deleteUser)
		})
	})
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input UserForCreate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Register(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.M{constants.FieldStatus: "Success"})
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input UserForLogin
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, _, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setTokenCookie(writer, token, constants.AccessTokenTTL)
	respond.OK(writer, respond.M{constants.FieldToken: token})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token, ok := middleware.ExtractToken(request); ok {
		if err := handler.service.Logout(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	clearTokenCookie(writer)
	respond.Message(writer, "Logged out")
}

func (handler *Handler) exists(writer http.ResponseWriter, request *http.Request) {
	count, err := handler.service.CountUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if count > 0 {
		respond.OK(writer, respond.M{
			constants.FieldStatus:  true,
			constants.FieldMessage: "Users exists",
			constants.FieldCount:   count,
		})
		return
	}
	respond.OK(writer, respond.M{
		constants.FieldStatus:  false,
		constants.FieldMessage: "No user",
	})
}

func (handler *Handler) getCurrentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"user": user})
}

func (handler *Handler) updateCurrentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UserForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateUser(request.Context(), userID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "User updated")
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"user": user})
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, respond.M{"users": users})
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UserForUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateUser(request.Context(), userID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "User updated")
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "user_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// setTokenCookie attaches the access token for browser clients. HttpOnly
// keeps it away from frontend scripts.
func setTokenCookie(writer http.ResponseWriter, token string, timeToLive time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(timeToLive.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookie expires the token cookie immediately.
func clearTokenCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
