package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrInvalidPrice is returned when a product price is zero or negative.
var ErrInvalidPrice = errors.New("price must be greater than zero")

// Service defines the catalog business logic.
type Service interface {
	// CreateProduct adds a product to a vendor's catalog. Stock defaults to
	// zero when the request omits it.
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)

	// GetProduct retrieves one product by id, active or not.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListProducts returns all active products for customer-facing listings.
	ListProducts(ctx context.Context) ([]*Product, error)

	// ListVendorProducts returns a vendor's full catalog.
	ListVendorProducts(ctx context.Context, vendorID string) ([]*Product, error)

	// ListByCategory returns active products in a category.
	ListByCategory(ctx context.Context, category string) ([]*Product, error)

	// SearchProducts returns active products matching the search term.
	SearchProducts(ctx context.Context, term string) ([]*Product, error)

	// LowStockProducts returns active products at or below the threshold.
	LowStockProducts(ctx context.Context, threshold int) ([]*Product, error)

	// UpdateProduct fully replaces a product's mutable fields.
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)

	// DeactivateProduct soft-deletes a product; repeat calls are no-ops.
	DeactivateProduct(ctx context.Context, id string) (*Product, error)

	// HardDeleteProduct removes a product permanently.
	HardDeleteProduct(ctx context.Context, id string) error

	// AdjustStock adds a delta to a product's stock outside of order flow.
	AdjustStock(ctx context.Context, id string, delta int) (*Product, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor_id: %w", err)
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	p := &Product{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       stock,
		Category:    req.Category,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error().Err(err).Str("vendor_id", req.VendorID).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, pid)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) ListVendorProducts(ctx context.Context, vendorID string) ([]*Product, error) {
	vid, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.ListByVendor(ctx, vid)
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *service) SearchProducts(ctx context.Context, term string) ([]*Product, error) {
	return s.repo.Search(ctx, term)
}

func (s *service) LowStockProducts(ctx context.Context, threshold int) ([]*Product, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.repo.LowStock(ctx, threshold)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	p := &Product{
		ID:          pid,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Category:    req.Category,
	}
	return s.repo.Update(ctx, p)
}

func (s *service) DeactivateProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.repo.Deactivate(ctx, pid)
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", id).Msg("product deactivated")
	return p, nil
}

func (s *service) HardDeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.HardDelete(ctx, pid)
}

func (s *service) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.AdjustStock(ctx, pid, delta)
}
