package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const productColumns = `p.id, p.vendor_id, p.name, p.description, p.price, p.image, p.stock, p.category, p.is_active, p.created_at, p.updated_at`

func (r *postgresRepository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (id, vendor_id, name, description, price, image, stock, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING is_active, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.VendorID, p.Name, p.Description, p.Price, p.Image, p.Stock, p.Category,
	).Scan(&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
		SELECT ` + productColumns + `, v.shop_name
		FROM products p
		LEFT JOIN vendors v ON p.vendor_id = v.id
		WHERE p.id = $1
	`
	p := &Product{}
	var shopName sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.Image,
		&p.Stock, &p.Category, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &shopName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product %s: %w", id, err)
	}
	p.VendorName = shopName.String
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `, v.shop_name
		FROM products p
		LEFT JOIN vendors v ON p.vendor_id = v.id
		WHERE p.is_active = true
		ORDER BY p.id
	`
	return r.queryWithVendor(ctx, query)
}

func (r *postgresRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.vendor_id = $1
		ORDER BY p.id
	`
	return r.query(ctx, query, vendorID)
}

func (r *postgresRepository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.category = $1 AND p.is_active = true
		ORDER BY p.id
	`
	return r.query(ctx, query, category)
}

func (r *postgresRepository) Search(ctx context.Context, term string) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE (p.name ILIKE $1 OR p.description ILIKE $1) AND p.is_active = true
		ORDER BY p.id
	`
	return r.query(ctx, query, "%"+term+"%")
}

func (r *postgresRepository) LowStock(ctx context.Context, threshold int) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.stock <= $1 AND p.is_active = true
		ORDER BY p.stock ASC
	`
	return r.query(ctx, query, threshold)
}

func (r *postgresRepository) Update(ctx context.Context, p *Product) (*Product, error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, image = $4, stock = $5, category = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + bareProductColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.Stock, p.Category, p.ID))
}

func (r *postgresRepository) Deactivate(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
		UPDATE products
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bareProductColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + bareProductColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, delta, id))
}

// ── helpers ──────────────────────────────────────────────────────────────────

const bareProductColumns = `id, vendor_id, name, description, price, image, stock, category, is_active, created_at, updated_at`

func (r *postgresRepository) scanOne(row *sql.Row) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.Image,
		&p.Stock, &p.Category, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(
			&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.Image,
			&p.Stock, &p.Category, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepository) queryWithVendor(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p := &Product{}
		var shopName sql.NullString
		if err := rows.Scan(
			&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.Image,
			&p.Stock, &p.Category, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &shopName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.VendorName = shopName.String
		products = append(products, p)
	}
	return products, rows.Err()
}
