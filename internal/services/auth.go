package services

import (
	"errors"
	"strings"
	"time"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// ValidationError carries per-field messages for malformed registration input
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// AuthService orchestrates identity creation and password authentication.
type AuthService struct {
	store  storage.Store
	tokens *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(store storage.Store, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register validates the payload and creates a new identity with default
// flags. The raw password never reaches the store.
func (s *AuthService) Register(reg *models.UserRegistration) (*models.User, error) {
	fields := map[string]string{}
	if reg.Email == "" || !strings.Contains(reg.Email, "@") {
		fields["email"] = "enter a valid email address"
	}
	if len(reg.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if reg.Password != reg.PasswordConfirm {
		fields["password_confirm"] = "Passwords don't match"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	user := &models.User{
		Email:     reg.Email,
		Mobile:    reg.Mobile,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		IsActive:  true,
	}
	if err := user.SetPassword(reg.Password); err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the identity iff the password matches and the account
// is active. Wrong password, unknown email, and inactive account are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if !user.CheckPassword(password) || !user.IsActive {
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// Login authenticates and mints a token pair, stamping the login time.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}

	return s.tokens.Issue(user)
}
