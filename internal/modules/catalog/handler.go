package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/httpapi"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.listProducts)                 // GET    /api/products
		r.Post("/", h.createProduct)               // POST   /api/products
		r.Get("/search", h.searchProducts)         // GET    /api/products/search?q=
		r.Get("/low-stock", h.lowStockProducts)    // GET    /api/products/low-stock?threshold=
		r.Get("/category/{category}", h.listByCategory)
		r.Get("/{id}", h.getProduct)               // GET    /api/products/{id}
		r.Put("/{id}", h.updateProduct)            // PUT    /api/products/{id}
		r.Delete("/{id}", h.deactivateProduct)     // DELETE /api/products/{id} (soft delete)
		r.Delete("/{id}/hard", h.hardDeleteProduct)
		r.Patch("/{id}/stock", h.adjustStock)      // PATCH  /api/products/{id}/stock
	})
	r.Get("/api/vendors/{vendorId}/products", h.listVendorProducts)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "missing required fields: "+err.Error())
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "missing required fields: "+err.Error())
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, p)
}

func (h *Handler) deactivateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.DeactivateProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, p)
}

func (h *Handler) hardDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HardDeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, map[string]string{"message": "product deleted successfully"})
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "delta is required")
		return
	}
	p, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, p)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		httpapi.Error(w, http.StatusBadRequest, "search term is required")
		return
	}
	products, err := h.service.SearchProducts(r.Context(), term)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, products)
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, products)
}

func (h *Handler) lowStockProducts(w http.ResponseWriter, r *http.Request) {
	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))
	products, err := h.service.LowStockProducts(r.Context(), threshold)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, products)
}

func (h *Handler) listVendorProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListVendorProducts(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpapi.Respond(w, http.StatusOK, products)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, ErrInvalidPrice):
		httpapi.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("catalog request failed")
		httpapi.Error(w, http.StatusInternalServerError, "failed to process product request")
	}
}
