package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
	"github.com/lexcase/lexcase-backend/internal/utils"
)

// OTPService manages the one-time login code lifecycle. A code moves from
// created to verified exactly once; expiry is a function of time, not a
// stored state.
type OTPService struct {
	store storage.Store
	sms   *SMSService // nil when SMS delivery is not configured
}

// NewOTPService creates a new OTP service
func NewOTPService(store storage.Store, sms *SMSService) *OTPService {
	return &OTPService{store: store, sms: sms}
}

// Request generates a fresh 6-digit code for the mobile number and persists
// it with a 10 minute expiry. The record including the code is returned; the
// handler echoes it only when no SMS collaborator is wired in.
func (s *OTPService) Request(mobile string) (*models.OTPLogin, error) {
	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OTPLogin{
		Mobile:    mobile,
		Code:      code,
		ExpiresAt: time.Now().Add(models.OTPLoginTTL),
	}
	otp, err = s.store.CreateOTP(otp)
	if err != nil {
		return nil, err
	}

	if s.sms != nil {
		// Delivery failure does not invalidate the code; the client can
		// simply request a new one.
		_ = s.sms.SendOTP(mobile, code)
	}

	return otp, nil
}

// Verify evaluates the most recently created unverified code for the
// (mobile, code) pair and claims it. The claim is a conditional update keyed
// on the unverified predicate: when two callers race, exactly one wins and
// the other gets ErrOTPNotFound.
func (s *OTPService) Verify(mobile, code string) (*models.OTPLogin, error) {
	otp, err := s.store.GetLatestUnverifiedOTP(mobile, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}

	if time.Now().After(otp.ExpiresAt) {
		return nil, ErrOTPExpired
	}

	claimed, err := s.store.ClaimOTP(otp.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Another verify won the race since our read.
		return nil, ErrOTPNotFound
	}

	otp.IsVerified = true
	return otp, nil
}
