package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shophub-market/shophub-backend/internal/db"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(conn *sql.DB) Repository {
	return &postgresRepository{db: conn}
}

const orderColumns = `id, user_id,
	shipping_first_name, shipping_last_name, shipping_email, shipping_phone,
	shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country,
	card_name, card_last4, expiry_date,
	subtotal, discount, shipping_cost, tax, total, promo_code, status, created_at`

// Create runs the one multi-step write that must be atomic: the order row,
// every line item with its vendor/price snapshot, and the matching stock
// decrements all commit together or not at all.
func (r *postgresRepository) Create(ctx context.Context, o *Order) error {
	return db.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		insertOrder := `
			INSERT INTO orders (id, user_id,
				shipping_first_name, shipping_last_name, shipping_email, shipping_phone,
				shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country,
				card_name, card_last4, expiry_date,
				subtotal, discount, shipping_cost, tax, total, promo_code, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
			RETURNING created_at
		`
		err := tx.QueryRowContext(ctx, insertOrder,
			o.ID, o.UserID,
			o.Shipping.FirstName, o.Shipping.LastName, o.Shipping.Email, o.Shipping.Phone,
			o.Shipping.Address, o.Shipping.City, o.Shipping.State, o.Shipping.Zip, o.Shipping.Country,
			o.Payment.CardName, o.Payment.CardLast4, o.Payment.ExpiryDate,
			o.Subtotal, o.Discount, o.ShippingCost, o.Tax, o.Total,
			nullableString(o.PromoCode), o.Status,
		).Scan(&o.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range o.Items {
			// Lock the product row so concurrent edits or orders resolve
			// against one consistent vendor/price/stock version.
			var vendorID uuid.UUID
			err := tx.QueryRowContext(ctx,
				`SELECT vendor_id, price FROM products WHERE id = $1 FOR UPDATE`,
				item.ProductID,
			).Scan(&vendorID, &item.Price)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			if err != nil {
				return fmt.Errorf("snapshot product %s: %w", item.ProductID, err)
			}
			item.VendorID = vendorID
			item.OrderID = o.ID

			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_items (id, order_id, product_id, vendor_id, quantity, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, o.ID, item.ProductID, item.VendorID, item.Quantity, item.Price,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			// Conditional decrement keeps the floor at zero: no row is
			// updated when stock cannot cover the quantity.
			res, err := tx.ExecContext(ctx,
				`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`,
				item.Quantity, item.ProductID,
			)
			if err != nil {
				return fmt.Errorf("decrement stock for product %s: %w", item.ProductID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
			}
		}
		return nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	items, err := r.queryItems(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.vendor_id, oi.quantity, oi.price, p.name, p.image
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepository) GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*Order, error) {
	orders, err := r.queryOrders(ctx, `
		SELECT DISTINCT o.id, o.user_id,
			o.shipping_first_name, o.shipping_last_name, o.shipping_email, o.shipping_phone,
			o.shipping_address, o.shipping_city, o.shipping_state, o.shipping_zip, o.shipping_country,
			o.card_name, o.card_last4, o.expiry_date,
			o.subtotal, o.discount, o.shipping_cost, o.tax, o.total, o.promo_code, o.status, o.created_at
		FROM orders o
		INNER JOIN order_items oi ON o.id = oi.order_id
		WHERE oi.vendor_id = $1
		ORDER BY o.created_at DESC`, vendorID)
	if err != nil {
		return nil, err
	}

	// Each order carries only this vendor's lines.
	for _, o := range orders {
		items, err := r.queryItems(ctx, `
			SELECT oi.id, oi.order_id, oi.product_id, oi.vendor_id, oi.quantity, oi.price, p.name, p.image
			FROM order_items oi
			LEFT JOIN products p ON oi.product_id = p.id
			WHERE oi.order_id = $1 AND oi.vendor_id = $2`, o.ID, vendorID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders`,
	).Scan(&stats.TotalRevenue, &stats.TotalOrders)
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}
	return stats, nil
}

func (r *postgresRepository) GetProductSnapshot(ctx context.Context, productID uuid.UUID) (*ProductSnapshot, error) {
	snap := &ProductSnapshot{}
	err := r.db.QueryRowContext(ctx,
		`SELECT vendor_id, price, is_active FROM products WHERE id = $1`, productID,
	).Scan(&snap.VendorID, &snap.Price, &snap.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("select product snapshot: %w", err)
	}
	return snap, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepository) scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	var userID sql.NullString
	var promoCode sql.NullString
	err := row.Scan(
		&o.ID, &userID,
		&o.Shipping.FirstName, &o.Shipping.LastName, &o.Shipping.Email, &o.Shipping.Phone,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.State, &o.Shipping.Zip, &o.Shipping.Country,
		&o.Payment.CardName, &o.Payment.CardLast4, &o.Payment.ExpiryDate,
		&o.Subtotal, &o.Discount, &o.ShippingCost, &o.Tax, &o.Total,
		&promoCode, &o.Status, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if userID.Valid {
		uid, err := uuid.Parse(userID.String)
		if err == nil {
			o.UserID = &uid
		}
	}
	o.PromoCode = promoCode.String
	return o, nil
}

func (r *postgresRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o := &Order{}
		var userID sql.NullString
		var promoCode sql.NullString
		if err := rows.Scan(
			&o.ID, &userID,
			&o.Shipping.FirstName, &o.Shipping.LastName, &o.Shipping.Email, &o.Shipping.Phone,
			&o.Shipping.Address, &o.Shipping.City, &o.Shipping.State, &o.Shipping.Zip, &o.Shipping.Country,
			&o.Payment.CardName, &o.Payment.CardLast4, &o.Payment.ExpiryDate,
			&o.Subtotal, &o.Discount, &o.ShippingCost, &o.Tax, &o.Total,
			&promoCode, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if userID.Valid {
			uid, err := uuid.Parse(userID.String)
			if err == nil {
				o.UserID = &uid
			}
		}
		o.PromoCode = promoCode.String
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make([]*OrderItem, 0)
	for rows.Next() {
		item := &OrderItem{}
		var name, image sql.NullString
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.VendorID,
			&item.Quantity, &item.Price, &name, &image,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.ProductName = name.String
		item.ProductImage = image.String
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
