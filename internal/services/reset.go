package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
	"github.com/lexcase/lexcase-backend/internal/utils"
)

// resetTokenAttempts bounds the collision retry loop on token creation. With
// a 256-bit token space a single attempt is all but guaranteed to succeed.
const resetTokenAttempts = 3

// PasswordResetService manages single-use password reset codes.
type PasswordResetService struct {
	store storage.Store
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(store storage.Store) *PasswordResetService {
	return &PasswordResetService{store: store}
}

// Request creates a reset code for the account registered under email and
// returns it. Email delivery is a collaborator concern; the handler echoes
// the code only in development deployments.
func (s *PasswordResetService) Request(email string) (*models.PasswordResetCode, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	var rc *models.PasswordResetCode
	for attempt := 0; attempt < resetTokenAttempts; attempt++ {
		token, err := utils.GenerateResetToken()
		if err != nil {
			return nil, err
		}
		rc, err = s.store.CreateResetCode(&models.PasswordResetCode{
			UserID:    user.ID,
			Code:      token,
			ExpiresAt: time.Now().Add(models.PasswordResetTTL),
		})
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, storage.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to generate a unique reset code")
}

// Confirm validates the code and commits the new password together with the
// used flip in one transaction, so a half-applied reset can never leave the
// code open for replay. Concurrent confirms on the same code: exactly one
// succeeds.
func (s *PasswordResetService) Confirm(code, newPassword string) error {
	rc, err := s.store.GetUnusedResetCode(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrResetCodeInvalid
		}
		return err
	}

	if time.Now().After(rc.ExpiresAt) {
		return ErrResetCodeInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	consumed, err := s.store.ConsumeResetCode(rc.ID, rc.UserID, string(hash))
	if err != nil {
		return err
	}
	if !consumed {
		return ErrResetCodeInvalid
	}
	return nil
}
