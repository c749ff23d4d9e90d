package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"creative-scribe/internal/domain"
	"creative-scribe/internal/repository"
)

// mockUserRepo implementa UserRepository en memoria, indexado por id y email.
type mockUserRepo struct {
	byID    map[string]domain.User
	byEmail map[string]domain.User

	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byEmail[user.Email]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) UpdateDisplayName(_ context.Context, id, displayName string, updatedAt time.Time) error {
	user, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.DisplayName = displayName
	user.UpdatedAt = updatedAt
	m.byID[id] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string, updatedAt time.Time) error {
	user, ok := m.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = updatedAt
	m.byID[id] = user
	m.byEmail[user.Email] = user
	return nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Register(t *testing.T) {
	t.Run("registra con display name explícito", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := NewUserService(zap.NewNop(), repo)

		user, err := svc.Register(context.Background(), "Ana@Example.com", "Ana", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "ana@example.com" {
			t.Fatalf("expected normalized email, got %q", user.Email)
		}
		if user.DisplayName != "Ana" {
			t.Fatalf("unexpected display name: %q", user.DisplayName)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
			t.Fatal("expected bcrypt hash of the password")
		}
	})

	t.Run("sin display name usa la parte local del email", func(t *testing.T) {
		svc := NewUserService(zap.NewNop(), newMockUserRepo())

		user, err := svc.Register(context.Background(), "bruno@example.com", "", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.DisplayName != "bruno" {
			t.Fatalf("expected %q, got %q", "bruno", user.DisplayName)
		}
	})

	t.Run("email inválido", func(t *testing.T) {
		svc := NewUserService(zap.NewNop(), newMockUserRepo())

		if _, err := svc.Register(context.Background(), "no-es-email", "", "password123"); err != ErrInvalidEmail {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("password corta", func(t *testing.T) {
		svc := NewUserService(zap.NewNop(), newMockUserRepo())

		if _, err := svc.Register(context.Background(), "c@example.com", "", "corta"); err != ErrWeakPassword {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("email duplicado", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := NewUserService(zap.NewNop(), repo)

		if _, err := svc.Register(context.Background(), "d@example.com", "", "password123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Register(context.Background(), "d@example.com", "", "password123"); err != ErrEmailTaken {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestUserService_Authenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	if _, err := svc.Register(context.Background(), "eva@example.com", "", "password123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("credenciales correctas", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "EVA@example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "eva@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("password incorrecta", func(t *testing.T) {
		if _, err := svc.Authenticate(context.Background(), "eva@example.com", "otra"); err != ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		if _, err := svc.Authenticate(context.Background(), "nadie@example.com", "password123"); err != ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	user, err := svc.Register(context.Background(), "fer@example.com", "", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("exige la password actual", func(t *testing.T) {
		if err := svc.ChangePassword(context.Background(), user.ID, "equivocada", "nueva-password"); err != ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rechaza nueva password corta", func(t *testing.T) {
		if err := svc.ChangePassword(context.Background(), user.ID, "password123", "corta"); err != ErrWeakPassword {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("cambia y permite autenticar con la nueva", func(t *testing.T) {
		if err := svc.ChangePassword(context.Background(), user.ID, "password123", "nueva-password"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Authenticate(context.Background(), "fer@example.com", "nueva-password"); err != nil {
			t.Fatalf("expected auth with new password, got %v", err)
		}
		if _, err := svc.Authenticate(context.Background(), "fer@example.com", "password123"); err != ErrInvalidCredentials {
			t.Fatalf("expected old password rejected, got %v", err)
		}
	})
}
