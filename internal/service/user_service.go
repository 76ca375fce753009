package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "printbridge/internal/errors"
	"printbridge/internal/model"
	"printbridge/internal/repository"
)

const tempPasswordLength = 8

// passwordCharset matches what operators are used to typing from the old
// deployment's generated passwords.
const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"

// UserUpdate carries the optional admin mutations for a user account.
type UserUpdate struct {
	Status *string
	Role   *string
}

// UserService exposes admin user management and self-service profile operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, email, role string) (user *model.User, tempPassword string, err error)
	UpdateUser(ctx context.Context, actorID, id uint, update UserUpdate) (*model.User, error)
	ResetPassword(ctx context.Context, id uint) (newPassword string, err error)
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over the user repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// CreateUser provisions an account with a generated one-time password. The
// password is returned exactly once and only its bcrypt hash is stored.
func (s *userService) CreateUser(ctx context.Context, email, role string) (*model.User, string, error) {
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, "", apperrors.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	tempPassword, err := generatePassword(tempPasswordLength)
	if err != nil {
		return nil, "", fmt.Errorf("generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.StatusActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	log.Printf("created user %s with role %s", user.Email, user.Role)
	return user, tempPassword, nil
}

// UpdateUser applies status and role changes to another account. An admin
// changing their own account is rejected as a validation error, not an
// authorization one: locking yourself out is a mistake, not a permission issue.
func (s *userService) UpdateUser(ctx context.Context, actorID, id uint, update UserUpdate) (*model.User, error) {
	if actorID == id {
		return nil, apperrors.ErrSelfModify
	}
	if update.Status != nil && !model.ValidStatus(*update.Status) {
		return nil, apperrors.ErrInvalidStatus
	}
	if update.Role != nil && !model.ValidRole(*update.Role) {
		return nil, apperrors.ErrInvalidRole
	}
	if update.Status == nil && update.Role == nil {
		return nil, apperrors.ErrNoUpdates
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if update.Status != nil {
		user.Status = *update.Status
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	log.Printf("user %d updated by admin %d", id, actorID)
	return user, nil
}

// ResetPassword replaces a user's password with a fresh generated one,
// returned exactly once.
func (s *userService) ResetPassword(ctx context.Context, id uint) (string, error) {
	newPassword, err := generatePassword(tempPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("update password: %w", err)
	}

	log.Printf("password reset for user %d", id)
	return newPassword, nil
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *userService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.ErrWeakPassword
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	log.Printf("user %d changed password", id)
	return nil
}

// generatePassword draws length characters from passwordCharset using
// crypto/rand.
func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}
