package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Guptsonu22/task-management-api/internal/domain"
	"github.com/Guptsonu22/task-management-api/internal/dto"
	"github.com/Guptsonu22/task-management-api/internal/password"
	"github.com/Guptsonu22/task-management-api/internal/repository"
	"github.com/Guptsonu22/task-management-api/internal/token"
	"github.com/Guptsonu22/task-management-api/internal/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates a new account and an initial session
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// Login authenticates a user and opens a session
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Refresh rotates a refresh token: the old token is consumed and a new
	// pair is issued
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout revokes the session for the given refresh token (idempotent)
	Logout(ctx context.Context, refreshToken string) error
	// PurgeExpired removes refresh tokens past their expiry
	PurgeExpired(ctx context.Context) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    *token.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	tokens *token.Manager,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

// Register creates a new account and an initial session
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return nil, domain.Validation("Email, name, and password are required")
	}
	if !validation.Email(req.Email) {
		return nil, domain.Validation("Invalid email format")
	}
	if ok, msg := validation.Name(req.Name); !ok {
		return nil, domain.Validation(msg)
	}
	if ok, msg := validation.Password(req.Password); !ok {
		return nil, domain.Validation(msg)
	}

	email := strings.ToLower(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login authenticates a user and opens a session. Unknown email and wrong
// password produce the same error so responses cannot be used to enumerate
// accounts.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.Validation("Email and password are required")
	}
	if !validation.Email(req.Email) {
		return nil, domain.Validation("Invalid email format")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh rotates a refresh token. The stored row is consumed with a single
// conditional delete, so of two concurrent refreshes with the same token
// exactly one succeeds.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, domain.Validation("Refresh token is required")
	}

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrRefreshNotFound
	}
	// The embedded exp claim already passed; the stored expiry is checked
	// separately so a row outliving its claim is still rejected.
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.DeleteByToken(ctx, refreshToken)
		return nil, domain.ErrRefreshExpired
	}

	consumed, err := s.tokenRepo.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// A concurrent refresh already rotated this token.
		return nil, domain.ErrRefreshNotFound
	}

	pair, err := s.issueSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the session for the given refresh token. A token that is
// already gone is not an error.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.Validation("Refresh token is required")
	}
	return s.tokenRepo.DeleteByToken(ctx, refreshToken)
}

// PurgeExpired removes refresh tokens past their expiry. Refresh rejects and
// deletes expired rows lazily; this sweep clears the ones no client ever
// presents again. Run at startup.
func (s *authService) PurgeExpired(ctx context.Context) error {
	return s.tokenRepo.DeleteExpired(ctx)
}

// issueSession creates a token pair and persists the refresh half.
func (s *authService) issueSession(ctx context.Context, userID string) (*domain.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}

	row := &domain.RefreshToken{
		ID:        uuid.New().String(),
		Token:     refreshToken,
		UserID:    userID,
		ExpiresAt: s.tokens.RefreshTokenExpiry(),
		CreatedAt: time.Now(),
	}
	if err := s.tokenRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
