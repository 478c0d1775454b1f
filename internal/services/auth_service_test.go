package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"taskmarket.com/taskmarket/internal/auth"
	"taskmarket.com/taskmarket/internal/constants"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

// memoryTokenStore is an in-memory TokenStore for testing.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]string)}
}

func (m *memoryTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.tokens[token] = userID
	return token, nil
}

func (m *memoryTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.tokens[token]
	if !ok {
		return "", auth.ErrTokenNotFound
	}
	return userID, nil
}

func (m *memoryTokenStore) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
	return nil
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), newMemoryTokenStore())
}

func TestRegisterLoginResolve(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	user, token, err := service.Register(ctx, "Asha Verma", "Asha@Example.com", "supersecret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email should be lowercased, got %s", user.Email)
	}
	if user.Role != constants.RoleUser {
		t.Errorf("expected role user, got %s", user.Role)
	}

	caller, err := service.ResolveCaller(ctx, token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if caller.UserID != user.ID || caller.Role != constants.RoleUser {
		t.Errorf("unexpected caller: %+v", caller)
	}

	if _, _, err := service.Login(ctx, "asha@example.com", "wrongpassword"); errCode(err) != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", err)
	}
	if _, _, err := service.Login(ctx, "nobody@example.com", "supersecret"); errCode(err) != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS for unknown email, got %v", err)
	}

	_, loginToken, err := service.Login(ctx, "asha@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Logout(ctx, loginToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := service.ResolveCaller(ctx, loginToken); errCode(err) != "UNAUTHORIZED" {
		t.Errorf("revoked token should be UNAUTHORIZED, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, "Asha Verma", "asha@example.com", "supersecret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := service.Register(ctx, "Someone Else", "asha@example.com", "othersecret"); errCode(err) != "EMAIL_ALREADY_IN_USE" {
		t.Errorf("expected EMAIL_ALREADY_IN_USE, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name               string
		fullName, email    string
		password           string
	}{
		{"short name", "A", "a@example.com", "supersecret"},
		{"bad email", "Asha Verma", "not-an-email", "supersecret"},
		{"short password", "Asha Verma", "a@example.com", "short"},
	}

	for _, tc := range cases {
		if _, _, err := service.Register(ctx, tc.fullName, tc.email, tc.password); errCode(err) != "VALIDATION_ERROR" {
			t.Errorf("%s: expected VALIDATION_ERROR, got %v", tc.name, err)
		}
	}
}

func TestEnsureAdminUser_Idempotent(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	if err := service.EnsureAdminUser(ctx, "admin@taskmarket.local", "ChangeMe123!", "TaskMarket Admin"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	admin, _, err := service.Login(ctx, "admin@taskmarket.local", "ChangeMe123!")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if admin.Role != constants.RoleAdmin {
		t.Errorf("expected admin role, got %s", admin.Role)
	}

	// Second run with a different email must not create a second admin.
	if err := service.EnsureAdminUser(ctx, "other@taskmarket.local", "ChangeMe123!", "Other Admin"); err != nil {
		t.Fatalf("repeat bootstrap failed: %v", err)
	}
	if _, _, err := service.Login(ctx, "other@taskmarket.local", "ChangeMe123!"); errCode(err) != "INVALID_CREDENTIALS" {
		t.Errorf("second admin should not exist, got %v", err)
	}
}

func TestEnsureAdminUser_EmailHeldByNonAdmin(t *testing.T) {
	service := newAuthService(t)
	ctx := context.Background()

	if _, _, err := service.Register(ctx, "Asha Verma", "admin@taskmarket.local", "supersecret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := service.EnsureAdminUser(ctx, "admin@taskmarket.local", "ChangeMe123!", "TaskMarket Admin"); err == nil {
		t.Error("bootstrap against a non-admin's email should fail")
	}
}
