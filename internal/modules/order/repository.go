package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no order matches the given id.
	ErrNotFound = errors.New("order not found")

	// ErrProductNotFound fails the whole order when a line item references
	// a product that does not exist. The transaction rolls back; a line is
	// never silently dropped.
	ErrProductNotFound = errors.New("ordered product not found")

	// ErrInsufficientStock fails the order when a product cannot cover the
	// requested quantity. Stock never goes below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductSnapshot is the vendor/price state of a product as seen by the
// placement transaction.
type ProductSnapshot struct {
	VendorID uuid.UUID
	Price    decimal.Decimal
	IsActive bool
}

// Repository defines data access for orders.
type Repository interface {
	// Create persists the order, its line items, and the matching stock
	// decrements in a single transaction. Each item's vendor and price are
	// read inside the transaction so a concurrent product edit resolves to
	// one consistent version. Any failure rolls everything back.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its line items.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// GetAll returns every order, newest first, without line items.
	GetAll(ctx context.Context) ([]*Order, error)

	// GetByUserID returns a customer's orders, newest first.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Order, error)

	// GetByVendorID returns orders containing the vendor's products, with
	// line items filtered to that vendor.
	GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*Order, error)

	// UpdateStatus overwrites an order's status. Transition legality is
	// enforced by the service.
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error

	// GetStats recomputes total revenue and order count.
	GetStats(ctx context.Context) (*Stats, error)

	// GetProductSnapshot reads a product's current vendor, price, and
	// active flag for checkout pricing.
	GetProductSnapshot(ctx context.Context, productID uuid.UUID) (*ProductSnapshot, error)
}
