package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub-market/shophub-backend/internal/auth"
)

type mockRepository struct {
	createFn      func(ctx context.Context, u *User) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*User, error)
	getByEmailFn  func(ctx context.Context, email string) (*User, error)
	emailExistsFn func(ctx context.Context, email string) (bool, error)
	getAllFn      func(ctx context.Context) ([]*User, error)
	updateFn      func(ctx context.Context, id uuid.UUID, name, email string) (*User, error)
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	return m.createFn(ctx, u)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func (m *mockRepository) GetAll(ctx context.Context) ([]*User, error) {
	return m.getAllFn(ctx)
}

func (m *mockRepository) Update(ctx context.Context, id uuid.UUID, name, email string) (*User, error) {
	return m.updateFn(ctx, id, name, email)
}

func testTokens() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret")
}

func TestRegister(t *testing.T) {
	t.Run("creates the account and issues a token", func(t *testing.T) {
		var created *User
		repo := &mockRepository{
			emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
			createFn: func(ctx context.Context, u *User) error {
				created = u
				return nil
			},
		}
		svc := NewService(repo, testTokens())

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Riley Chen",
			Email:    "  Riley@Example.COM ",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "riley@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)
		assert.NotEqual(t, "hunter22", created.PasswordHash)

		claims, err := testTokens().Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "customer", claims.Role)
		assert.Equal(t, created.ID.String(), claims.Subject)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := &mockRepository{
			emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
		}
		svc := NewService(repo, testTokens())

		_, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Riley Chen",
			Email:    "riley@example.com",
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := NewService(&mockRepository{}, testTokens())
		_, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Riley Chen",
			Email:    "riley@example.com",
			Password: "abc",
		})
		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	digest, err := auth.HashPassword("hunter22")
	require.NoError(t, err)

	existing := &User{
		ID:           uuid.New(),
		Name:         "Riley Chen",
		Email:        "riley@example.com",
		PasswordHash: digest,
	}

	repo := &mockRepository{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			if email == existing.Email {
				return existing, nil
			}
			return nil, ErrNotFound
		},
	}
	svc := NewService(repo, testTokens())

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "riley@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "hunter22",
		})
		_, errWrongPass := svc.Login(context.Background(), LoginRequest{
			Email:    "riley@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})
}
