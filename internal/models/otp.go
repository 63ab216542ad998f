package models

import (
	"time"

	"gorm.io/gorm"
)

// OTPLoginTTL is how long a login code stays valid after creation.
const OTPLoginTTL = 10 * time.Minute

// OTPLogin is a short-lived numeric login code bound to a mobile number.
// Several codes may exist for the same number; verification always evaluates
// the most recently created unverified one.
type OTPLogin struct {
	gorm.Model
	Mobile     string    `json:"mobile" gorm:"not null;index"`
	Code       string    `json:"otp" gorm:"not null"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
}

func (OTPLogin) TableName() string {
	return "otp_logins"
}

// BeforeCreate hook to default the expiry window
func (o *OTPLogin) BeforeCreate(tx *gorm.DB) error {
	if o.ExpiresAt.IsZero() {
		o.ExpiresAt = time.Now().Add(OTPLoginTTL)
	}
	return nil
}

// IsValid reports whether the code can still satisfy a verification.
// Once verified it can never again be valid.
func (o *OTPLogin) IsValid() bool {
	return !o.IsVerified && time.Now().Before(o.ExpiresAt)
}
