package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetTTL is how long a reset code stays valid after creation.
const PasswordResetTTL = 24 * time.Hour

// PasswordResetCode is a single-use opaque token that authorizes a password
// change without the old password. The code is generated server-side from a
// crypto-random source and carries no identity or timestamp information.
type PasswordResetCode struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
}

func (PasswordResetCode) TableName() string {
	return "password_reset_codes"
}

// BeforeCreate hook to default the expiry window
func (p *PasswordResetCode) BeforeCreate(tx *gorm.DB) error {
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = time.Now().Add(PasswordResetTTL)
	}
	return nil
}

// IsValid reports whether the code can still be confirmed.
func (p *PasswordResetCode) IsValid() bool {
	return !p.IsUsed && time.Now().Before(p.ExpiresAt)
}
