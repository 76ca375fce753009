package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"printbridge/internal/model"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the default duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
	// RememberMeRefreshExpiry is the extended refresh lifetime for "remember me" logins.
	RememberMeRefreshExpiry = 30 * 24 * time.Hour
)

var (
	// ErrTokenExpired is returned when a token is well formed and correctly
	// signed but past its expiry. Callers use this to attempt a silent
	// refresh; any other verification failure is terminal.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed, tampered or wrongly signed tokens.
	ErrTokenInvalid = errors.New("invalid token")
)

// AccessClaims carries the identity encoded in an access token.
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is deliberately minimal: no email or role, so that every
// refresh re-resolves the user and picks up role or status changes.
type RefreshClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the two token classes. The access and
// refresh secrets are distinct: a compromised access key cannot forge
// refresh tokens and vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenService creates a token service from the two signing secrets.
func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// IssueAccess signs a short-lived access token for the user.
func (s *TokenService) IssueAccess(user *model.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// IssueRefresh signs a refresh token for the user. The token ID (JTI) is
// returned separately for storage in Redis. rememberMe selects the
// extended lifetime.
func (s *TokenService) IssueRefresh(user *model.User, rememberMe bool) (tokenID string, token string, expiry time.Duration, err error) {
	expiry = RefreshTokenExpiry
	if rememberMe {
		expiry = RememberMeRefreshExpiry
	}
	tokenID = uuid.New().String()
	now := time.Now()
	claims := &RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.refreshSecret)
	if err != nil {
		return "", "", 0, fmt.Errorf("sign refresh token: %w", err)
	}
	return tokenID, token, expiry, nil
}

// VerifyAccess validates an access token and returns its claims. Expiry is
// reported as ErrTokenExpired, distinct from ErrTokenInvalid, so the auth
// gate can attempt a silent refresh only on genuine expiry.
func (s *TokenService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.accessSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token against the refresh secret and
// returns its claims. It fails closed: expired, malformed and wrongly
// signed tokens are all rejected.
func (s *TokenService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
