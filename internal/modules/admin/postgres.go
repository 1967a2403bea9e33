package admin

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

// NewPostgresRepository creates a new PostgreSQL admin repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const adminColumns = `id, name, email, password_hash, created_at`

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin WHERE email = $1`, email))
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin WHERE id = $1`, id))
}

func (r *postgresRepository) Create(ctx context.Context, a *Admin) error {
	query := `
		INSERT INTO admin (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, a.ID, a.Name, a.Email, a.PasswordHash).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, name, email string) (*Admin, error) {
	query := `
		UPDATE admin SET name = $1, email = $2
		WHERE id = $3
		RETURNING ` + adminColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, name, email, id))
}

func (r *postgresRepository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders`,
	).Scan(&stats.TotalRevenue, &stats.TotalOrders)
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM vendors),
			(SELECT COUNT(*) FROM products)`,
	).Scan(&stats.TotalUsers, &stats.TotalVendors, &stats.TotalProducts)
	if err != nil {
		return nil, fmt.Errorf("aggregate platform counts: %w", err)
	}

	return stats, nil
}

func (r *postgresRepository) scanOne(row *sql.Row) (*Admin, error) {
	a := &Admin{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	return a, nil
}
