package review

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

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const reviewColumns = `id, product_id, user_id, user_name, rating, title, text, verified, helpful_count, created_at`

func (r *postgresRepository) Create(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, user_name, rating, title, text, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING helpful_count, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rv.ID, rv.ProductID, rv.UserID, rv.UserName, rv.Rating, rv.Title, rv.Text, rv.Verified,
	).Scan(&rv.HelpfulCount, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	return r.query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`, productID)
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Review, error) {
	return r.query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]*Review, error) {
	return r.query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, rating int, title, text string) (*Review, error) {
	query := `
		UPDATE reviews SET rating = $1, title = $2, text = $3
		WHERE id = $4
		RETURNING ` + reviewColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, rating, title, text, id))
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementHelpful(ctx context.Context, id uuid.UUID) (*Review, error) {
	query := `
		UPDATE reviews SET helpful_count = helpful_count + 1
		WHERE id = $1
		RETURNING ` + reviewColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE product_id = $1`, productID,
	).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate average rating: %w", err)
	}
	return avg.Float64, count, nil
}

func (r *postgresRepository) RatingBreakdown(ctx context.Context, productID uuid.UUID) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE product_id = $1
		GROUP BY rating
		ORDER BY rating DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating breakdown: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("scan rating breakdown: %w", err)
		}
		counts[rating] = count
	}
	return counts, rows.Err()
}

func (r *postgresRepository) ProductExists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return exists, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepository) scanOne(row *sql.Row) (*Review, error) {
	rv := &Review{}
	var userID sql.NullString
	err := row.Scan(
		&rv.ID, &rv.ProductID, &userID, &rv.UserName, &rv.Rating,
		&rv.Title, &rv.Text, &rv.Verified, &rv.HelpfulCount, &rv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}
	if userID.Valid {
		if uid, err := uuid.Parse(userID.String); err == nil {
			rv.UserID = &uid
		}
	}
	return rv, nil
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		rv := &Review{}
		var userID sql.NullString
		if err := rows.Scan(
			&rv.ID, &rv.ProductID, &userID, &rv.UserName, &rv.Rating,
			&rv.Title, &rv.Text, &rv.Verified, &rv.HelpfulCount, &rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if userID.Valid {
			if uid, err := uuid.Parse(userID.String); err == nil {
				rv.UserID = &uid
			}
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
