package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	// ErrProductUnavailable is returned when a line item references a
	// deactivated product.
	ErrProductUnavailable = errors.New("product is unavailable")

	// ErrInvalidTransition is returned when a status update is not a legal
	// move in the order lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// validTransitions encodes the order lifecycle: confirmed -> processing ->
// shipped -> delivered, with cancellation possible from any non-terminal
// state. Terminal states allow no moves.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Service defines the order business logic.
type Service interface {
	// PlaceOrder prices the cart against current catalog prices and
	// persists the order atomically.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// GetOrder retrieves a full order with its line items.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]*Order, error)

	// ListUserOrders returns a customer's orders, newest first.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	// ListVendorOrders returns orders containing the vendor's products.
	ListVendorOrders(ctx context.Context, vendorID string) ([]*Order, error)

	// UpdateStatus advances an order along the lifecycle. Repeating the
	// current status is a no-op.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// GetStats returns platform-wide revenue and order count.
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	var userID *uuid.UUID
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", err)
		}
		userID = &uid
	}

	// Price the cart from current catalog prices. The repository re-reads
	// each product inside the transaction for the stored snapshot; the
	// totals below are the caller-computed values the order records.
	subtotal := decimal.Zero
	items := make([]*OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id %q: %w", line.ProductID, err)
		}
		snap, err := s.repo.GetProductSnapshot(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !snap.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, line.ProductID)
		}

		subtotal = subtotal.Add(snap.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, &OrderItem{
			ID:        uuid.New(),
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	quote := priceOrder(subtotal, req.PromoCode)

	o := &Order{
		ID:           uuid.New(),
		UserID:       userID,
		Shipping:     req.Shipping,
		Payment:      req.Payment,
		Subtotal:     quote.Subtotal,
		Discount:     quote.Discount,
		ShippingCost: quote.ShippingCost,
		Tax:          quote.Tax,
		Total:        quote.Total,
		PromoCode:    req.PromoCode,
		Status:       StatusConfirmed,
		Items:        items,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to place order")
		return nil, err
	}

	log.Info().
		Str("order_id", o.ID.String()).
		Str("total", o.Total.String()).
		Int("items", len(o.Items)).
		Msg("order placed")
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByUserID(ctx, uid)
}

func (s *service) ListVendorOrders(ctx context.Context, vendorID string) ([]*Order, error) {
	vid, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByVendorID(ctx, vid)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	o, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	newStatus := OrderStatus(strings.ToLower(req.Status))
	if newStatus == o.Status {
		return o, nil
	}

	allowed, known := validTransitions[o.Status]
	if !known {
		return nil, fmt.Errorf("%w: unknown current status %q", ErrInvalidTransition, o.Status)
	}
	legal := false
	for _, next := range allowed {
		if next == newStatus {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, oid, newStatus); err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", id).
		Str("from", string(o.Status)).
		Str("to", string(newStatus)).
		Msg("order status updated")
	o.Status = newStatus
	return o, nil
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.GetStats(ctx)
}
