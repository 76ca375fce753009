package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"printbridge/internal/auth"
	apperrors "printbridge/internal/errors"
	"printbridge/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T) *model.User {
	return &model.User{
		ID:           3,
		Email:        "admin@test.com",
		PasswordHash: hashFor(t, "admin123"),
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		rememberMe    bool
		setupMock     func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore)
		expectedError error
	}{
		{
			name:       "successful login",
			email:      "admin@test.com",
			password:   "admin123",
			rememberMe: false,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "admin@test.com").Return(activeUser(t), nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(3), auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:       "remember me stretches the refresh lifetime",
			email:      "admin@test.com",
			password:   "admin123",
			rememberMe: true,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "admin@test.com").Return(activeUser(t), nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(3), auth.RememberMeRefreshExpiry).Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@test.com",
			password: "admin123",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@test.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "admin@test.com",
			password: "wrong",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "admin@test.com").Return(activeUser(t), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "disabled account with valid credentials",
			email:    "admin@test.com",
			password: "admin123",
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				user := activeUser(t)
				user.Status = model.StatusInactive
				mRepo.On("FindByEmail", mock.Anything, "admin@test.com").Return(user, nil)
			},
			expectedError: apperrors.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(t, mockRepo, mockTokenStore)

			tokenService := auth.NewTokenService("access-secret", "refresh-secret")
			svc := NewAuthService(mockRepo, tokenService, mockTokenStore)

			result, err := svc.Login(context.Background(), tt.email, tt.password, tt.rememberMe)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Equal(t, tt.email, result.User.Email)

				// The issued access token must decode back to the stored identity.
				claims, err := tokenService.VerifyAccess(result.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, result.User.ID, claims.UserID)
				assert.Equal(t, result.User.Email, claims.Email)
				assert.Equal(t, result.User.Role, claims.Role)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	tokenService := auth.NewTokenService("access-secret", "refresh-secret")

	issueRefresh := func(t *testing.T, user *model.User) (tokenID, token string) {
		tokenID, token, _, err := tokenService.IssueRefresh(user, false)
		require.NoError(t, err)
		return tokenID, token
	}

	t.Run("new access token carries the current role", func(t *testing.T) {
		user := activeUser(t)
		tokenID, refreshToken := issueRefresh(t, user)

		// Role changed since the refresh token was minted.
		demoted := *user
		demoted.Role = model.RoleUser

		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(user.ID, nil)
		mockRepo.On("FindByID", mock.Anything, user.ID).Return(&demoted, nil)

		svc := NewAuthService(mockRepo, tokenService, mockTokenStore)
		accessToken, refreshedUser, err := svc.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, refreshedUser.Role)

		claims, err := tokenService.VerifyAccess(accessToken)
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, claims.Role)

		mockRepo.AssertExpectations(t)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("disabled account cannot refresh", func(t *testing.T) {
		user := activeUser(t)
		tokenID, refreshToken := issueRefresh(t, user)

		disabled := *user
		disabled.Status = model.StatusInactive

		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(user.ID, nil)
		mockRepo.On("FindByID", mock.Anything, user.ID).Return(&disabled, nil)

		svc := NewAuthService(mockRepo, tokenService, mockTokenStore)
		_, _, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		user := activeUser(t)
		tokenID, refreshToken := issueRefresh(t, user)

		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), assert.AnError)

		svc := NewAuthService(mockRepo, tokenService, mockTokenStore)
		_, _, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)

		svc := NewAuthService(mockRepo, tokenService, mockTokenStore)
		_, _, err := svc.Refresh(context.Background(), "definitely-not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("access token is not accepted as a refresh token", func(t *testing.T) {
		user := activeUser(t)
		accessToken, err := tokenService.IssueAccess(user)
		require.NoError(t, err)

		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)

		svc := NewAuthService(mockRepo, tokenService, mockTokenStore)
		_, _, err = svc.Refresh(context.Background(), accessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	tokenService := auth.NewTokenService("access-secret", "refresh-secret")
	user := activeUser(t)
	tokenID, refreshToken, _, err := tokenService.IssueRefresh(user, false)
	require.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(mockRepo, tokenService, mockTokenStore)
	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	// A garbage token is treated as an already-dead session.
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))

	mockTokenStore.AssertExpectations(t)
}
