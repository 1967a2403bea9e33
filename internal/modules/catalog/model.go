package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a single item in a vendor's catalog. Price is an exact decimal
// end to end; it is never held in a binary float.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	IsActive    bool            `json:"is_active"`
	VendorName  string          `json:"vendor_name,omitempty"` // joined from vendors for customer-facing reads
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateProductRequest is the payload for adding a product to a vendor's catalog.
type CreateProductRequest struct {
	VendorID    string          `json:"vendor_id" validate:"required,uuid4"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Image       string          `json:"image"`
	Stock       *int            `json:"stock" validate:"omitempty,gte=0"` // defaults to 0 when omitted
	Category    string          `json:"category"`
}

// UpdateProductRequest replaces every mutable field of a product.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category"`
}

// AdjustStockRequest adds a (possibly negative) delta to a product's stock.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}
