package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/httpapi"
)

// Handler exposes admin console HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new admin handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.login) // POST /api/admin/login
		r.Get("/stats", h.platformStats)
		r.Get("/{id}", h.getAdmin)
		r.Put("/{id}", h.updateAdmin)
	})
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

func (h *Handler) platformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlatformStats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, stats)
}

func (h *Handler) getAdmin(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, a)
}

func (h *Handler) updateAdmin(w http.ResponseWriter, r *http.Request) {
	var req UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "name and email are required")
		return
	}
	a, err := h.service.UpdateAdmin(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, a)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httpapi.Error(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, "admin not found")
	default:
		log.Error().Err(err).Msg("admin request failed")
		httpapi.Error(w, http.StatusInternalServerError, "failed to process admin request")
	}
}
