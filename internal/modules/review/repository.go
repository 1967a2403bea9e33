package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no review matches the given id.
var ErrNotFound = errors.New("review not found")

// Repository defines data access for reviews.
type Repository interface {
	// Create persists a new review.
	Create(ctx context.Context, rv *Review) error

	// GetByProductID returns a product's reviews, newest first.
	GetByProductID(ctx context.Context, productID uuid.UUID) ([]*Review, error)

	// GetByUserID returns a customer's reviews, newest first.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Review, error)

	// GetAll returns every review, newest first.
	GetAll(ctx context.Context) ([]*Review, error)

	// Update replaces a review's rating, title, and text.
	Update(ctx context.Context, id uuid.UUID, rating int, title, text string) (*Review, error)

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementHelpful atomically bumps the helpful counter and returns the
	// updated review.
	IncrementHelpful(ctx context.Context, id uuid.UUID) (*Review, error)

	// AverageRating returns the mean rating and review count for a product;
	// both are zero when the product has no reviews.
	AverageRating(ctx context.Context, productID uuid.UUID) (avg float64, count int, err error)

	// RatingBreakdown returns per-star counts for a product. Only stars
	// with at least one review appear; the service zero-fills the rest.
	RatingBreakdown(ctx context.Context, productID uuid.UUID) (map[int]int, error)

	// ProductExists reports whether a product row exists, active or not.
	ProductExists(ctx context.Context, productID uuid.UUID) (bool, error)
}
