package admin

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Admin is a platform operator account. The password digest never leaves
// this package.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlatformStats is the marketplace-wide dashboard aggregate.
type PlatformStats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int             `json:"total_orders"`
	TotalUsers    int             `json:"total_users"`
	TotalVendors  int             `json:"total_vendors"`
	TotalProducts int             `json:"total_products"`
}

// LoginRequest is the payload for the admin console sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Admin *Admin `json:"admin"`
	Token string `json:"token"`
}

// UpdateAdminRequest replaces an admin's profile fields.
type UpdateAdminRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}
