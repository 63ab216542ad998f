package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lexcase/lexcase-backend/internal/models"
)

// Default token lifetimes, overridable via env.
const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken covers malformed, expired, mistyped, and mis-signed tokens.
var ErrInvalidToken = errors.New("token is invalid or expired")

// TokenPair is the access/refresh pair minted on successful authentication.
// It is never persisted; a fresh pair is derived on every login.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// Claims is the JWT payload for both token types. TokenType distinguishes
// access from refresh so one cannot be replayed as the other.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"typ"`
}

// TokenService signs and validates session tokens. Pure function of identity
// plus signing key; there is no server-side revocation list.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a token service with the given signing secret.
// TTLs are taken as given; env-driven defaulting lives in NewTokenServiceFromEnv.
func NewTokenService(secret []byte, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// NewTokenServiceFromEnv reads JWT_SECRET and optional TTL overrides
// (JWT_ACCESS_TTL_MINUTES, JWT_REFRESH_TTL_HOURS) from the environment.
func NewTokenServiceFromEnv() (*TokenService, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	accessTTL := defaultAccessTTL
	if v := os.Getenv("JWT_ACCESS_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			accessTTL = time.Duration(minutes) * time.Minute
		}
	}
	refreshTTL := defaultRefreshTTL
	if v := os.Getenv("JWT_REFRESH_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			refreshTTL = time.Duration(hours) * time.Hour
		}
	}

	return NewTokenService([]byte(secret), accessTTL, refreshTTL), nil
}

// Issue mints a fresh access/refresh pair for a verified identity.
func (s *TokenService) Issue(user *models.User) (*TokenPair, error) {
	access, err := s.sign(user, "access", s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, "refresh", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and mints a new access token without
// re-presenting credentials.
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, "refresh")
	if err != nil {
		return "", err
	}
	user := &models.User{Email: claims.Email, IsStaff: claims.IsStaff}
	user.ID = claims.UserID
	return s.sign(user, "access", s.accessTTL)
}

// ParseAccess validates an access token and returns its claims.
func (s *TokenService) ParseAccess(token string) (*Claims, error) {
	return s.parse(token, "access")
}

func (s *TokenService) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		TokenType: tokenType,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
