package customer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/auth"
	"github.com/shophub-market/shophub-backend/internal/httpapi"
)

// Handler exposes customer account HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new customer handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register) // POST /api/auth/register
		r.Post("/login", h.login)       // POST /api/auth/login
	})
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.listUsers) // GET /api/users (admin)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, resp)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, resp)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, u)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "name and email are required")
		return
	}
	u, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, u)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httpapi.Error(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrEmailExists):
		httpapi.Error(w, http.StatusBadRequest, ErrEmailExists.Error())
	case auth.IsPasswordPolicyError(err):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, "user not found")
	default:
		log.Error().Err(err).Msg("customer request failed")
		httpapi.Error(w, http.StatusInternalServerError, "failed to process account request")
	}
}
