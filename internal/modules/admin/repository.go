package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no admin matches the given id or email.
var ErrNotFound = errors.New("admin not found")

// Repository defines data access for admin accounts and platform stats.
type Repository interface {
	// GetByEmail returns an admin by email, digest included.
	GetByEmail(ctx context.Context, email string) (*Admin, error)

	// GetByID returns an admin by id.
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)

	// Create persists a new admin. Usually only done once during setup.
	Create(ctx context.Context, a *Admin) error

	// Update replaces an admin's name and email.
	Update(ctx context.Context, id uuid.UUID, name, email string) (*Admin, error)

	// GetPlatformStats returns marketplace-wide counts and revenue.
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}
