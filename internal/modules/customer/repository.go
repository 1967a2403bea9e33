package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no user matches the given id or email.
var ErrNotFound = errors.New("user not found")

// Repository defines data access for customer accounts.
type Repository interface {
	// Create persists a new user.
	Create(ctx context.Context, u *User) error

	// GetByID returns a user by id.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail returns a user by email, digest included.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// EmailExists reports whether an account already uses the email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// GetAll returns every user, newest first.
	GetAll(ctx context.Context) ([]*User, error)

	// Update replaces a user's name and email.
	Update(ctx context.Context, id uuid.UUID, name, email string) (*User, error)
}
