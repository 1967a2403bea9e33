package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no product matches the given id.
var ErrNotFound = errors.New("product not found")

// Repository defines data access for the product catalog.
type Repository interface {
	// Create persists a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product regardless of its active flag, so
	// historical order references stay resolvable after deactivation.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List returns all active products with their vendor's shop name.
	List(ctx context.Context) ([]*Product, error)

	// ListByVendor returns every product owned by a vendor, active or not.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Product, error)

	// ListByCategory returns active products in a category.
	ListByCategory(ctx context.Context, category string) ([]*Product, error)

	// Search returns active products whose name or description matches term.
	Search(ctx context.Context, term string) ([]*Product, error)

	// LowStock returns active products at or below the threshold, most
	// urgent restocks first.
	LowStock(ctx context.Context, threshold int) ([]*Product, error)

	// Update fully replaces the mutable fields of a product.
	Update(ctx context.Context, p *Product) (*Product, error)

	// Deactivate soft-deletes a product. Deactivating an already inactive
	// product is a no-op that still returns the row.
	Deactivate(ctx context.Context, id uuid.UUID) (*Product, error)

	// HardDelete removes a product row permanently.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// AdjustStock atomically adds delta to a product's stock. Order
	// placement does not use this; it decrements stock inside its own
	// transaction so orders and stock cannot diverge.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Product, error)
}
