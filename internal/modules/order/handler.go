package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/httpapi"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new order handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)                // POST  /api/orders
		r.Get("/", h.listOrders)                 // GET   /api/orders (admin)
		r.Get("/stats", h.getStats)              // GET   /api/orders/stats
		r.Get("/user/{userId}", h.listUserOrders)
		r.Get("/{id}", h.getOrder)               // GET   /api/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)  // PATCH /api/orders/{id}/status
	})
	r.Get("/api/vendors/{vendorId}/orders", h.listVendorOrders)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "missing required order information: "+err.Error())
		return
	}
	o, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, o)
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListUserOrders(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, orders)
}

func (h *Handler) listVendorOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListVendorOrders(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, orders)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "status is required")
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, o)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, stats)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, "order not found")
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrProductUnavailable),
		errors.Is(err, ErrInsufficientStock):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httpapi.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("order request failed")
		httpapi.Error(w, http.StatusInternalServerError, "failed to process order request")
	}
}
