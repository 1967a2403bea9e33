package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/httpapi"
)

// Handler exposes review HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new review handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", h.listReviews)            // GET  /api/reviews (admin)
		r.Post("/", h.createReview)          // POST /api/reviews
		r.Get("/user/{userId}", h.listUserReviews)
		// {id} is a product id on the two GET routes and a review id on the
		// rest; chi requires one wildcard name per path segment.
		r.Get("/{id}", h.listProductReviews)
		r.Get("/{id}/summary", h.ratingSummary)
		r.Put("/{id}", h.updateReview)
		r.Delete("/{id}", h.deleteReview)
		r.Post("/{id}/helpful", h.markHelpful)
	})
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "missing required review information: "+err.Error())
		return
	}
	rv, err := h.service.CreateReview(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, rv)
}

func (h *Handler) listProductReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListProductReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, reviews)
}

func (h *Handler) listUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListUserReviews(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, reviews)
}

func (h *Handler) ratingSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RatingSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, summary)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "missing required review information: "+err.Error())
		return
	}
	rv, err := h.service.UpdateReview(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, rv)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, map[string]string{"message": "review deleted successfully"})
}

func (h *Handler) markHelpful(w http.ResponseWriter, r *http.Request) {
	rv, err := h.service.MarkHelpful(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, rv)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, "review not found")
	case errors.Is(err, ErrProductNotFound):
		httpapi.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, ErrInvalidRating):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("review request failed")
		httpapi.Error(w, http.StatusInternalServerError, "failed to process review request")
	}
}
