package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shophub-market/shophub-backend/internal/auth"
)

// ErrInvalidCredentials is returned for any failed login. Unknown email
// and wrong password share it so responses do not reveal which happened.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service defines the admin console business logic.
type Service interface {
	// Login verifies credentials and signs a session token.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// GetAdmin returns one admin by id.
	GetAdmin(ctx context.Context, id string) (*Admin, error)

	// UpdateAdmin replaces an admin's name and email.
	UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (*Admin, error)

	// PlatformStats returns marketplace-wide counts and revenue.
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

// NewService creates a new admin service.
func NewService(repo Repository, tokens *auth.TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	a, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, ErrNotFound) {
		// Burn a comparison so this path costs the same as a bad password.
		auth.CheckDummy(req.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}

	if !auth.CheckPassword(req.Password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID.String(), "admin")
	if err != nil {
		return nil, err
	}

	log.Info().Str("admin_id", a.ID.String()).Msg("admin logged in")
	return &AuthResponse{Admin: a, Token: token}, nil
}

func (s *service) GetAdmin(ctx context.Context, id string) (*Admin, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, aid)
}

func (s *service) UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (*Admin, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Update(ctx, aid, strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)))
}

func (s *service) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	return s.repo.GetPlatformStats(ctx)
}
