package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn             func(ctx context.Context, o *Order) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*Order, error)
	getAllFn             func(ctx context.Context) ([]*Order, error)
	getByUserIDFn        func(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	getByVendorIDFn      func(ctx context.Context, vendorID uuid.UUID) ([]*Order, error)
	updateStatusFn       func(ctx context.Context, id uuid.UUID, status OrderStatus) error
	getStatsFn           func(ctx context.Context) (*Stats, error)
	getProductSnapshotFn func(ctx context.Context, productID uuid.UUID) (*ProductSnapshot, error)
}

func (m *mockRepository) Create(ctx context.Context, o *Order) error {
	return m.createFn(ctx, o)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) GetAll(ctx context.Context) ([]*Order, error) {
	return m.getAllFn(ctx)
}

func (m *mockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*Order, error) {
	return m.getByVendorIDFn(ctx, vendorID)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockRepository) GetStats(ctx context.Context) (*Stats, error) {
	return m.getStatsFn(ctx)
}

func (m *mockRepository) GetProductSnapshot(ctx context.Context, productID uuid.UUID) (*ProductSnapshot, error) {
	return m.getProductSnapshotFn(ctx, productID)
}

func validRequest(productID string, quantity int) PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: []CartLine{{ProductID: productID, Quantity: quantity}},
		Shipping: ShippingAddress{
			FirstName: "Jordan",
			LastName:  "Lee",
			Email:     "jordan@example.com",
			Address:   "1 Main St",
			City:      "Springfield",
			State:     "IL",
			Zip:       "62701",
			Country:   "US",
		},
		Payment: PaymentInfo{
			CardName:   "Jordan Lee",
			CardLast4:  "4242",
			ExpiryDate: "12/27",
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	vendorID := uuid.New()
	productID := uuid.New()

	t.Run("prices the cart and persists a confirmed order", func(t *testing.T) {
		var created *Order
		repo := &mockRepository{
			getProductSnapshotFn: func(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error) {
				assert.Equal(t, productID, id)
				return &ProductSnapshot{VendorID: vendorID, Price: d("25"), IsActive: true}, nil
			},
			createFn: func(ctx context.Context, o *Order) error {
				created = o
				return nil
			},
		}
		svc := NewService(repo)

		o, err := svc.PlaceOrder(context.Background(), validRequest(productID.String(), 2))
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, StatusConfirmed, o.Status)
		assert.True(t, o.Subtotal.Equal(d("50")), "subtotal: got %s", o.Subtotal)
		assert.True(t, o.ShippingCost.Equal(d("10")), "shipping: got %s", o.ShippingCost)
		assert.True(t, o.Tax.Equal(d("5.00")), "tax: got %s", o.Tax)
		assert.True(t, o.Total.Equal(d("65.00")), "total: got %s", o.Total)
		require.Len(t, o.Items, 1)
		assert.Equal(t, productID, o.Items[0].ProductID)
		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.Nil(t, o.UserID)
	})

	t.Run("applies a promo code", func(t *testing.T) {
		repo := &mockRepository{
			getProductSnapshotFn: func(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error) {
				return &ProductSnapshot{VendorID: vendorID, Price: d("100"), IsActive: true}, nil
			},
			createFn: func(ctx context.Context, o *Order) error { return nil },
		}
		svc := NewService(repo)

		req := validRequest(productID.String(), 1)
		req.PromoCode = "SAVE10"
		o, err := svc.PlaceOrder(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, o.Discount.Equal(d("10.00")), "discount: got %s", o.Discount)
		assert.Equal(t, "SAVE10", o.PromoCode)
	})

	t.Run("rejects a deactivated product", func(t *testing.T) {
		repo := &mockRepository{
			getProductSnapshotFn: func(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error) {
				return &ProductSnapshot{VendorID: vendorID, Price: d("25"), IsActive: false}, nil
			},
		}
		svc := NewService(repo)

		_, err := svc.PlaceOrder(context.Background(), validRequest(productID.String(), 1))
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("fails the whole order on a missing product", func(t *testing.T) {
		repo := &mockRepository{
			getProductSnapshotFn: func(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error) {
				return nil, ErrProductNotFound
			},
		}
		svc := NewService(repo)

		_, err := svc.PlaceOrder(context.Background(), validRequest(productID.String(), 1))
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("surfaces insufficient stock from the transaction", func(t *testing.T) {
		repo := &mockRepository{
			getProductSnapshotFn: func(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error) {
				return &ProductSnapshot{VendorID: vendorID, Price: d("25"), IsActive: true}, nil
			},
			createFn: func(ctx context.Context, o *Order) error {
				return ErrInsufficientStock
			},
		}
		svc := NewService(repo)

		_, err := svc.PlaceOrder(context.Background(), validRequest(productID.String(), 99))
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})
}

func TestUpdateStatus(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name       string
		current    OrderStatus
		requested  string
		wantStatus OrderStatus
		wantErr    error
		wantWrite  bool
	}{
		{name: "confirmed to processing", current: StatusConfirmed, requested: "processing", wantStatus: StatusProcessing, wantWrite: true},
		{name: "processing to shipped", current: StatusProcessing, requested: "shipped", wantStatus: StatusShipped, wantWrite: true},
		{name: "shipped to delivered", current: StatusShipped, requested: "delivered", wantStatus: StatusDelivered, wantWrite: true},
		{name: "cancel while confirmed", current: StatusConfirmed, requested: "cancelled", wantStatus: StatusCancelled, wantWrite: true},
		{name: "cancel while shipped", current: StatusShipped, requested: "cancelled", wantStatus: StatusCancelled, wantWrite: true},
		{name: "uppercase input is normalized", current: StatusConfirmed, requested: "PROCESSING", wantStatus: StatusProcessing, wantWrite: true},
		{name: "same status is a no-op", current: StatusShipped, requested: "shipped", wantStatus: StatusShipped, wantWrite: false},
		{name: "skipping a stage is rejected", current: StatusConfirmed, requested: "shipped", wantErr: ErrInvalidTransition},
		{name: "delivered is terminal", current: StatusDelivered, requested: "confirmed", wantErr: ErrInvalidTransition},
		{name: "cancelled is terminal", current: StatusCancelled, requested: "processing", wantErr: ErrInvalidTransition},
		{name: "moving backwards is rejected", current: StatusShipped, requested: "processing", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrote := false
			repo := &mockRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*Order, error) {
					return &Order{ID: orderID, Status: tt.current}, nil
				},
				updateStatusFn: func(ctx context.Context, id uuid.UUID, status OrderStatus) error {
					wrote = true
					assert.Equal(t, tt.wantStatus, status)
					return nil
				},
			}
			svc := NewService(repo)

			o, err := svc.UpdateStatus(context.Background(), orderID.String(), UpdateStatusRequest{Status: tt.requested})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, o.Status)
			assert.Equal(t, tt.wantWrite, wrote)
		})
	}

	t.Run("unknown order id", func(t *testing.T) {
		svc := NewService(&mockRepository{})
		_, err := svc.UpdateStatus(context.Background(), "not-a-uuid", UpdateStatusRequest{Status: "processing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetStats(t *testing.T) {
	repo := &mockRepository{
		getStatsFn: func(ctx context.Context) (*Stats, error) {
			return &Stats{TotalRevenue: decimal.RequireFromString("1234.50"), TotalOrders: 7}, nil
		},
	}
	svc := NewService(repo)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("1234.50")))
}
