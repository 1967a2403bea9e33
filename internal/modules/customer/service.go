package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/auth"
)

var (
	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned for any failed login. Unknown email
	// and wrong password share it so responses do not reveal which happened.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service defines the customer account business logic.
type Service interface {
	// Register creates an account and signs a session token for it.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Login verifies credentials and signs a session token.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// ListUsers returns every account.
	ListUsers(ctx context.Context) ([]*User, error)

	// GetUser returns one account by id.
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateUser replaces an account's name and email.
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

// NewService creates a new customer service.
func NewService(repo Repository, tokens *auth.TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: digest,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(u.ID.String(), "customer")
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return &AuthResponse{User: u, Token: token}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrNotFound) {
		// Burn a comparison so this path costs the same as a bad password.
		auth.CheckDummy(req.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID.String(), "customer")
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Update(ctx, uid, strings.TrimSpace(req.Name), normalizeEmail(req.Email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
