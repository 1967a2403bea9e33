package order

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub-market/shophub-backend/internal/db"
)

// testDB connects to the database named by TEST_DATABASE_URL and applies the
// schema. Tests using it are skipped when the variable is unset.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(conn, "../../../migrations"))
	return conn
}

func seedVendor(t *testing.T, conn *sql.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := conn.Exec(`
		INSERT INTO vendors (id, shop_name, owner_name, email, password_hash, is_approved)
		VALUES ($1, 'Test Shop', 'Test Owner', $2, 'x', TRUE)`,
		id, fmt.Sprintf("vendor-%s@test.local", id))
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, conn *sql.DB, vendorID uuid.UUID, price string, stock int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := conn.Exec(`
		INSERT INTO products (id, vendor_id, name, price, stock)
		VALUES ($1, $2, 'Test Product', $3, $4)`,
		id, vendorID, price, stock)
	require.NoError(t, err)
	return id
}

func productStock(t *testing.T, conn *sql.DB, productID uuid.UUID) int {
	t.Helper()
	var stock int
	require.NoError(t, conn.QueryRow(`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock))
	return stock
}

func testOrder(productID uuid.UUID, quantity int) *Order {
	return &Order{
		ID: uuid.New(),
		Shipping: ShippingAddress{
			FirstName: "Jordan", LastName: "Lee", Email: "jordan@example.com",
			Address: "1 Main St", City: "Springfield", State: "IL", Zip: "62701", Country: "US",
		},
		Payment:  PaymentInfo{CardName: "Jordan Lee", CardLast4: "4242", ExpiryDate: "12/27"},
		Subtotal: d("50"), Discount: d("0"), ShippingCost: d("10"), Tax: d("5"), Total: d("65"),
		Status: StatusConfirmed,
		Items: []*OrderItem{
			{ID: uuid.New(), ProductID: productID, Quantity: quantity},
		},
	}
}

func TestCreateOrderTransaction(t *testing.T) {
	conn := testDB(t)
	repo := NewPostgresRepository(conn)
	ctx := context.Background()

	vendorID := seedVendor(t, conn)

	t.Run("commits the order, items, and stock decrement together", func(t *testing.T) {
		productID := seedProduct(t, conn, vendorID, "25.00", 5)

		o := testOrder(productID, 2)
		require.NoError(t, repo.Create(ctx, o))

		assert.Equal(t, 3, productStock(t, conn, productID))
		assert.Equal(t, vendorID, o.Items[0].VendorID)
		assert.True(t, o.Items[0].Price.Equal(d("25.00")), "snapshot price: got %s", o.Items[0].Price)

		stored, err := repo.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, stored.Status)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, "Test Product", stored.Items[0].ProductName)
	})

	t.Run("rolls back everything on insufficient stock", func(t *testing.T) {
		productID := seedProduct(t, conn, vendorID, "25.00", 5)

		o := testOrder(productID, 10)
		err := repo.Create(ctx, o)
		require.ErrorIs(t, err, ErrInsufficientStock)

		assert.Equal(t, 5, productStock(t, conn, productID))
		_, err = repo.GetByID(ctx, o.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rolls back on a missing product", func(t *testing.T) {
		o := testOrder(uuid.New(), 1)
		err := repo.Create(ctx, o)
		require.ErrorIs(t, err, ErrProductNotFound)

		_, err = repo.GetByID(ctx, o.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateStatusPersistence(t *testing.T) {
	conn := testDB(t)
	repo := NewPostgresRepository(conn)
	ctx := context.Background()

	vendorID := seedVendor(t, conn)
	productID := seedProduct(t, conn, vendorID, "25.00", 5)

	o := testOrder(productID, 1)
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, StatusProcessing))
	stored, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, stored.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), StatusProcessing), ErrNotFound)
}
