package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidRating is returned when a rating falls outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrProductNotFound is returned when a review targets an unknown product.
	ErrProductNotFound = errors.New("product not found")
)

// Service defines the review business logic.
type Service interface {
	// CreateReview validates the rating bounds and the target product, then
	// persists the review. An empty display name becomes "Anonymous".
	CreateReview(ctx context.Context, req CreateReviewRequest) (*Review, error)

	// ListProductReviews returns a product's reviews, newest first.
	ListProductReviews(ctx context.Context, productID string) ([]*Review, error)

	// ListUserReviews returns a customer's reviews, newest first.
	ListUserReviews(ctx context.Context, userID string) ([]*Review, error)

	// ListReviews returns every review.
	ListReviews(ctx context.Context) ([]*Review, error)

	// UpdateReview replaces a review's rating, title, and text.
	UpdateReview(ctx context.Context, id string, req UpdateReviewRequest) (*Review, error)

	// DeleteReview removes a review.
	DeleteReview(ctx context.Context, id string) error

	// MarkHelpful bumps the helpful counter.
	MarkHelpful(ctx context.Context, id string) (*Review, error)

	// RatingSummary returns the mean, count, and zero-filled per-star
	// histogram for a product, stars descending.
	RatingSummary(ctx context.Context, productID string) (*RatingSummary, error)
}

type service struct {
	repo Repository
}

// NewService creates a new review service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateReview(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	var userID *uuid.UUID
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id: %w", err)
		}
		userID = &uid
	}

	userName := req.UserName
	if userName == "" {
		userName = "Anonymous"
	}

	rv := &Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    req.Rating,
		Title:     req.Title,
		Text:      req.Text,
		Verified:  req.Verified,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to create review")
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

func (s *service) ListProductReviews(ctx context.Context, productID string) ([]*Review, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByProductID(ctx, pid)
}

func (s *service) ListUserReviews(ctx context.Context, userID string) ([]*Review, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByUserID(ctx, uid)
}

func (s *service) ListReviews(ctx context.Context) ([]*Review, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) UpdateReview(ctx context.Context, id string, req UpdateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Update(ctx, rid, req.Rating, req.Title, req.Text)
}

func (s *service) DeleteReview(ctx context.Context, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, rid)
}

func (s *service) MarkHelpful(ctx context.Context, id string) (*Review, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.IncrementHelpful(ctx, rid)
}

func (s *service) RatingSummary(ctx context.Context, productID string) (*RatingSummary, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	avg, count, err := s.repo.AverageRating(ctx, pid)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.RatingBreakdown(ctx, pid)
	if err != nil {
		return nil, err
	}

	// Every star value appears, stars descending, zero-filled.
	breakdown := make([]RatingCount, 0, 5)
	for star := 5; star >= 1; star-- {
		breakdown = append(breakdown, RatingCount{Rating: star, Count: counts[star]})
	}

	return &RatingSummary{
		AverageRating: avg,
		ReviewCount:   count,
		Breakdown:     breakdown,
	}, nil
}
