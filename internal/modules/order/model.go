package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// PaymentInfo is the payment summary stored with an order. The full card
// number and CVV are never accepted, stored, or logged.
type PaymentInfo struct {
	CardName   string `json:"card_name" validate:"required"`
	CardLast4  string `json:"card_last4" validate:"required,len=4,numeric"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
}

// Order is a placed order. The money fields are snapshots computed at
// checkout; they stay authoritative even if catalog prices change later.
type Order struct {
	ID           uuid.UUID       `json:"id"`
	UserID       *uuid.UUID      `json:"user_id,omitempty"` // nil for guest checkout
	Shipping     ShippingAddress `json:"shipping_address"`
	Payment      PaymentInfo     `json:"payment_info"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	PromoCode    string          `json:"promo_code,omitempty"`
	Status       OrderStatus     `json:"status"`
	Items        []*OrderItem    `json:"items,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderItem is one immutable line of an order. VendorID and Price are
// snapshots taken inside the placement transaction; ProductName and
// ProductImage are joined at read time for display only.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductImage string          `json:"product_image,omitempty"`
}

// Stats is the platform-wide order aggregate, recomputed on every call.
type Stats struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalOrders  int             `json:"total_orders"`
}

// CartLine is one requested line item at checkout.
type CartLine struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest is the payload for placing an order.
type PlaceOrderRequest struct {
	UserID    string          `json:"user_id" validate:"omitempty,uuid4"`
	Items     []CartLine      `json:"items" validate:"required,min=1,dive"`
	Shipping  ShippingAddress `json:"shipping_address" validate:"required"`
	Payment   PaymentInfo     `json:"payment_info" validate:"required"`
	PromoCode string          `json:"promo_code"`
}

// UpdateStatusRequest advances an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
