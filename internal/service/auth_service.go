package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"printbridge/internal/auth"
	apperrors "printbridge/internal/errors"
	"printbridge/internal/model"
	"printbridge/internal/repository"
)

const bcryptCost = 10

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string, rememberMe bool) (result *LoginResult, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, user *model.User, err error)
	Logout(ctx context.Context, refreshToken string) error
}

// LoginResult bundles the credentials issued by a successful login.
// rememberMe stretches the refresh token's lifetime rather than gating it,
// so silent refresh works for every session.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	RefreshExpiry int64 // seconds, for the cookie Max-Age
	User          *model.User
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService *auth.TokenService
	tokenStore   auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenService *auth.TokenService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		tokenStore:   tokenStore,
	}
}

// Login authenticates a user and issues tokens. Unknown emails and wrong
// passwords fail with the same error so the response does not reveal which
// accounts exist. A disabled account is rejected even with valid credentials.
func (s *authService) Login(ctx context.Context, email, password string, rememberMe bool) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, err := s.tokenService.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	tokenID, refreshToken, expiry, err := s.tokenService.IssueRefresh(user, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, expiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	log.Printf("user %s logged in", user.Email)
	return &LoginResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		RefreshExpiry: int64(expiry.Seconds()),
		User:          user,
	}, nil
}

// Refresh validates a refresh token and mints a new access token. The user
// is re-resolved from the store so the fresh token carries the current
// role, and a disabled account cannot refresh no matter how valid the
// refresh token is.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, *model.User, error) {
	claims, err := s.tokenService.VerifyRefresh(refreshToken)
	if err != nil {
		return "", nil, apperrors.ErrInvalidRefreshToken
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return "", nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, apperrors.ErrUserNotFound
	}
	if !user.IsActive() {
		return "", nil, apperrors.ErrAccountDisabled
	}

	accessToken, err := s.tokenService.IssueAccess(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, user, nil
}

// Logout revokes the refresh token. An already-invalid token is not an
// error: the session it names is gone either way.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenService.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			return nil
		}
		return err
	}
	return s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
}
