package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer review of a product. UserID is nil for anonymous
// reviews; HelpfulCount only ever grows.
type Review struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	UserName     string     `json:"user_name"`
	Rating       int        `json:"rating"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	Verified     bool       `json:"verified"`
	HelpfulCount int        `json:"helpful_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// RatingSummary is the aggregate rating view for a product. Average is 0
// when there are no reviews.
type RatingSummary struct {
	AverageRating float64       `json:"average_rating"`
	ReviewCount   int           `json:"review_count"`
	Breakdown     []RatingCount `json:"breakdown"`
}

// RatingCount is the number of reviews at one star value.
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// CreateReviewRequest is the payload for posting a review.
type CreateReviewRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	UserID    string `json:"user_id" validate:"omitempty,uuid4"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Verified  bool   `json:"verified"`
}

// UpdateReviewRequest replaces a review's rating, title, and text.
type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text" validate:"required"`
}
