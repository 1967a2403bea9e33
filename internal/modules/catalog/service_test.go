package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn         func(ctx context.Context, p *Product) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*Product, error)
	listFn           func(ctx context.Context) ([]*Product, error)
	listByVendorFn   func(ctx context.Context, vendorID uuid.UUID) ([]*Product, error)
	listByCategoryFn func(ctx context.Context, category string) ([]*Product, error)
	searchFn         func(ctx context.Context, term string) ([]*Product, error)
	lowStockFn       func(ctx context.Context, threshold int) ([]*Product, error)
	updateFn         func(ctx context.Context, p *Product) (*Product, error)
	deactivateFn     func(ctx context.Context, id uuid.UUID) (*Product, error)
	hardDeleteFn     func(ctx context.Context, id uuid.UUID) error
	adjustStockFn    func(ctx context.Context, id uuid.UUID, delta int) (*Product, error)
}

func (m *mockRepository) Create(ctx context.Context, p *Product) error {
	return m.createFn(ctx, p)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) List(ctx context.Context) ([]*Product, error) {
	return m.listFn(ctx)
}

func (m *mockRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Product, error) {
	return m.listByVendorFn(ctx, vendorID)
}

func (m *mockRepository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	return m.listByCategoryFn(ctx, category)
}

func (m *mockRepository) Search(ctx context.Context, term string) ([]*Product, error) {
	return m.searchFn(ctx, term)
}

func (m *mockRepository) LowStock(ctx context.Context, threshold int) ([]*Product, error) {
	return m.lowStockFn(ctx, threshold)
}

func (m *mockRepository) Update(ctx context.Context, p *Product) (*Product, error) {
	return m.updateFn(ctx, p)
}

func (m *mockRepository) Deactivate(ctx context.Context, id uuid.UUID) (*Product, error) {
	return m.deactivateFn(ctx, id)
}

func (m *mockRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return m.hardDeleteFn(ctx, id)
}

func (m *mockRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Product, error) {
	return m.adjustStockFn(ctx, id, delta)
}

func TestCreateProduct(t *testing.T) {
	vendorID := uuid.New()

	base := CreateProductRequest{
		VendorID: vendorID.String(),
		Name:     "Walnut Desk Organizer",
		Price:    decimal.RequireFromString("34.99"),
		Category: "office",
	}

	t.Run("stock defaults to zero when omitted", func(t *testing.T) {
		var created *Product
		repo := &mockRepository{
			createFn: func(ctx context.Context, p *Product) error {
				created = p
				return nil
			},
		}
		svc := NewService(repo)

		p, err := svc.CreateProduct(context.Background(), base)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 0, p.Stock)
		assert.Equal(t, vendorID, p.VendorID)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("explicit stock is kept", func(t *testing.T) {
		repo := &mockRepository{
			createFn: func(ctx context.Context, p *Product) error { return nil },
		}
		svc := NewService(repo)

		stock := 25
		req := base
		req.Stock = &stock
		p, err := svc.CreateProduct(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 25, p.Stock)
	})

	t.Run("rejects non-positive prices", func(t *testing.T) {
		svc := NewService(&mockRepository{})
		for _, price := range []string{"0", "-1", "-0.01"} {
			req := base
			req.Price = decimal.RequireFromString(price)
			_, err := svc.CreateProduct(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidPrice, "price %s", price)
		}
	})

	t.Run("rejects a malformed vendor id", func(t *testing.T) {
		svc := NewService(&mockRepository{})
		req := base
		req.VendorID = "not-a-uuid"
		_, err := svc.CreateProduct(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("malformed id maps to not found", func(t *testing.T) {
		svc := NewService(&mockRepository{})
		_, err := svc.GetProduct(context.Background(), "banana")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("passes through repository lookups", func(t *testing.T) {
		id := uuid.New()
		repo := &mockRepository{
			getByIDFn: func(ctx context.Context, got uuid.UUID) (*Product, error) {
				assert.Equal(t, id, got)
				return &Product{ID: id, IsActive: false}, nil
			},
		}
		svc := NewService(repo)

		p, err := svc.GetProduct(context.Background(), id.String())
		require.NoError(t, err)
		// Deactivated products stay resolvable by id.
		assert.False(t, p.IsActive)
	})
}

func TestLowStockProducts(t *testing.T) {
	tests := []struct {
		name          string
		threshold     int
		wantThreshold int
	}{
		{name: "explicit threshold", threshold: 3, wantThreshold: 3},
		{name: "zero falls back to default", threshold: 0, wantThreshold: 10},
		{name: "negative falls back to default", threshold: -5, wantThreshold: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				lowStockFn: func(ctx context.Context, threshold int) ([]*Product, error) {
					assert.Equal(t, tt.wantThreshold, threshold)
					return []*Product{}, nil
				},
			}
			svc := NewService(repo)

			_, err := svc.LowStockProducts(context.Background(), tt.threshold)
			require.NoError(t, err)
		})
	}
}

func TestDeactivateProduct(t *testing.T) {
	id := uuid.New()
	calls := 0
	repo := &mockRepository{
		deactivateFn: func(ctx context.Context, got uuid.UUID) (*Product, error) {
			calls++
			return &Product{ID: got, IsActive: false}, nil
		},
	}
	svc := NewService(repo)

	// Repeated deactivation keeps returning the row.
	for i := 0; i < 2; i++ {
		p, err := svc.DeactivateProduct(context.Background(), id.String())
		require.NoError(t, err)
		assert.False(t, p.IsActive)
	}
	assert.Equal(t, 2, calls)
}

func TestUpdateProduct(t *testing.T) {
	svc := NewService(&mockRepository{})
	_, err := svc.UpdateProduct(context.Background(), uuid.New().String(), UpdateProductRequest{
		Name:  "x",
		Price: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
