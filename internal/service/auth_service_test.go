package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Guptsonu22/task-management-api/internal/domain"
	"github.com/Guptsonu22/task-management-api/internal/dto"
	"github.com/Guptsonu22/task-management-api/internal/token"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users      map[string]*domain.User
	emailIndex map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:      make(map[string]*domain.User),
		emailIndex: make(map[string]*domain.User),
	}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users[id], nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.emailIndex[email], nil
}

func (r *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, exists := r.emailIndex[email]
	return exists, nil
}

// mockRefreshTokenRepository is a mock implementation of
// RefreshTokenRepository. A mutex guards the token map so Consume keeps its
// exactly-one-winner guarantee under concurrent refreshes.
type mockRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

func (r *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *mockRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[token], nil
}

func (r *mockRefreshTokenRepository) Consume(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return false, nil
	}
	delete(r.tokens, token)
	return true, nil
}

func (r *mockRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *mockRefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, row := range r.tokens {
		if time.Now().After(row.ExpiresAt) {
			delete(r.tokens, key)
		}
	}
	return nil
}

func (r *mockRefreshTokenRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func testTokenManager() *token.Manager {
	return token.NewManager(&token.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  "15m",
		RefreshExpiry: "7d",
	})
}

func TestAuthService_Register(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

	t.Run("successful registration", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Email:    "test@example.com",
			Name:     "Test User",
			Password: "password1",
		}

		resp, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if resp.AccessToken == "" {
			t.Error("Register() AccessToken is empty")
		}
		if resp.RefreshToken == "" {
			t.Error("Register() RefreshToken is empty")
		}
		if resp.User.Email != req.Email {
			t.Errorf("Register() User.Email = %v, want %v", resp.User.Email, req.Email)
		}
		if tokenRepo.count() != 1 {
			t.Errorf("stored refresh tokens = %d, want 1", tokenRepo.count())
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Email:    "test@example.com",
			Name:     "Another User",
			Password: "password2",
		}

		_, err := svc.Register(context.Background(), req)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("Register() error = %v, want %v", err, domain.ErrEmailTaken)
		}
	})

	t.Run("duplicate email with different case", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Email:    "TEST@Example.com",
			Name:     "Another User",
			Password: "password2",
		}

		_, err := svc.Register(context.Background(), req)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("Register() error = %v, want %v", err, domain.ErrEmailTaken)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "x@example.com"})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Register() error = %v, want validation error", err)
		}
		if verr.Message != "Email, name, and password are required" {
			t.Errorf("Register() message = %q", verr.Message)
		}
	})

	t.Run("short password", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Email:    "short@example.com",
			Name:     "Short",
			Password: "five5",
		}

		_, err := svc.Register(context.Background(), req)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Register() error = %v, want validation error", err)
		}
		if verr.Message != "Password must be at least 6 characters long" {
			t.Errorf("Register() message = %q", verr.Message)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	testUser := &domain.User{
		ID:           "test-user-id",
		Email:        "login@example.com",
		Name:         "Login Test",
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	userRepo.users[testUser.ID] = testUser
	userRepo.emailIndex[testUser.Email] = testUser

	t.Run("successful login", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "password1",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("Login() returned empty tokens")
		}
	})

	t.Run("uppercase email matches", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "Login@Example.com",
			Password: "password1",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPassErr := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "wrong-password",
		})
		_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password1",
		})

		if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want %v", wrongPassErr, domain.ErrInvalidCredentials)
		}
		if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
			t.Errorf("unknown email error = %v, want %v", unknownErr, domain.ErrInvalidCredentials)
		}
		if wrongPassErr.Error() != unknownErr.Error() {
			t.Error("wrong password and unknown email produce different messages")
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("rotation invalidates the old token", func(t *testing.T) {
		userRepo := newMockUserRepository()
		tokenRepo := newMockRefreshTokenRepository()
		svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

		resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "rotate@example.com",
			Name:     "Rotate",
			Password: "password1",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		rotated, err := svc.Refresh(context.Background(), resp.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
		if rotated.RefreshToken == resp.RefreshToken {
			t.Error("Refresh() returned the same refresh token")
		}

		_, err = svc.Refresh(context.Background(), resp.RefreshToken)
		if !errors.Is(err, domain.ErrRefreshNotFound) {
			t.Errorf("reusing a rotated token: error = %v, want %v", err, domain.ErrRefreshNotFound)
		}
	})

	t.Run("stored expiry overrides the token claim", func(t *testing.T) {
		userRepo := newMockUserRepository()
		tokenRepo := newMockRefreshTokenRepository()
		tokens := testTokenManager()
		svc := NewAuthService(userRepo, tokenRepo, tokens)

		refresh, err := tokens.IssueRefresh("user-1")
		if err != nil {
			t.Fatalf("IssueRefresh() error = %v", err)
		}
		tokenRepo.tokens[refresh] = &domain.RefreshToken{
			ID:        "row-1",
			Token:     refresh,
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(-time.Minute),
			CreatedAt: time.Now().Add(-time.Hour),
		}

		_, err = svc.Refresh(context.Background(), refresh)
		if !errors.Is(err, domain.ErrRefreshExpired) {
			t.Errorf("Refresh() error = %v, want %v", err, domain.ErrRefreshExpired)
		}
		if tokenRepo.count() != 0 {
			t.Error("expired row was not deleted")
		}
	})

	t.Run("token not in the store", func(t *testing.T) {
		userRepo := newMockUserRepository()
		tokenRepo := newMockRefreshTokenRepository()
		tokens := testTokenManager()
		svc := NewAuthService(userRepo, tokenRepo, tokens)

		refresh, err := tokens.IssueRefresh("user-1")
		if err != nil {
			t.Fatalf("IssueRefresh() error = %v", err)
		}

		_, err = svc.Refresh(context.Background(), refresh)
		if !errors.Is(err, domain.ErrRefreshNotFound) {
			t.Errorf("Refresh() error = %v, want %v", err, domain.ErrRefreshNotFound)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		userRepo := newMockUserRepository()
		tokenRepo := newMockRefreshTokenRepository()
		svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

		_, err := svc.Refresh(context.Background(), "not-a-jwt")
		if !errors.Is(err, domain.ErrInvalidRefreshToken) {
			t.Errorf("Refresh() error = %v, want %v", err, domain.ErrInvalidRefreshToken)
		}
	})

	t.Run("concurrent refreshes have exactly one winner", func(t *testing.T) {
		userRepo := newMockUserRepository()
		tokenRepo := newMockRefreshTokenRepository()
		svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

		resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "race@example.com",
			Name:     "Race",
			Password: "password1",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		const attempts = 8
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Refresh(context.Background(), resp.RefreshToken)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else if !errors.Is(err, domain.ErrRefreshNotFound) {
				t.Errorf("loser error = %v, want %v", err, domain.ErrRefreshNotFound)
			}
		}
		if winners != 1 {
			t.Errorf("winners = %d, want exactly 1", winners)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "logout@example.com",
		Name:     "Logout",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("revokes the session", func(t *testing.T) {
		if err := svc.Logout(context.Background(), resp.RefreshToken); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		if tokenRepo.count() != 0 {
			t.Errorf("stored refresh tokens = %d, want 0", tokenRepo.count())
		}

		_, err := svc.Refresh(context.Background(), resp.RefreshToken)
		if !errors.Is(err, domain.ErrRefreshNotFound) {
			t.Errorf("Refresh() after logout: error = %v, want %v", err, domain.ErrRefreshNotFound)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		if err := svc.Logout(context.Background(), resp.RefreshToken); err != nil {
			t.Errorf("Logout() second call error = %v", err)
		}
	})

	t.Run("empty token rejected", func(t *testing.T) {
		err := svc.Logout(context.Background(), "")
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Logout() error = %v, want validation error", err)
		}
	})
}

func TestAuthService_PurgeExpired(t *testing.T) {
	userRepo := newMockUserRepository()
	tokenRepo := newMockRefreshTokenRepository()
	svc := NewAuthService(userRepo, tokenRepo, testTokenManager())

	tokenRepo.tokens["stale"] = &domain.RefreshToken{
		ID:        "row-stale",
		Token:     "stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
	}
	tokenRepo.tokens["live"] = &domain.RefreshToken{
		ID:        "row-live",
		Token:     "live",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	if err := svc.PurgeExpired(context.Background()); err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if tokenRepo.count() != 1 {
		t.Errorf("stored refresh tokens = %d, want 1", tokenRepo.count())
	}
	if _, ok := tokenRepo.tokens["live"]; !ok {
		t.Error("PurgeExpired() removed an unexpired token")
	}
}
