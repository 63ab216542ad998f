package models

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultStorageQuota is the per-user document storage allowance (5 GiB).
const DefaultStorageQuota int64 = 5368709120

// User represents a login account for the firm (lawyers, staff, customers).
// Email is the sole login key.
type User struct {
	gorm.Model

	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Mobile       string     `json:"mobile" gorm:"index"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-" gorm:"not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsStaff      bool       `json:"is_staff" gorm:"default:false"`
	IsSeparated  bool       `json:"is_separated" gorm:"default:false"`
	StorageQuota int64      `json:"storage_quota" gorm:"default:5368709120"`
	StorageUsed  int64      `json:"storage_used" gorm:"default:0"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to normalize the email and set defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	if u.StorageQuota == 0 {
		u.StorageQuota = DefaultStorageQuota
	}
	return nil
}

// SetPassword hashes and stores the password. The raw value is never persisted.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// StorageAvailable is derived on read and never stored separately.
func (u *User) StorageAvailable() int64 {
	return u.StorageQuota - u.StorageUsed
}

// NormalizeEmail lowercases the domain part and trims whitespace, the same
// normalization applied on registration and on every lookup.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return strings.ToLower(email)
	}
	return strings.ToLower(email[:at]) + "@" + strings.ToLower(email[at+1:])
}

// PublicUser is the subset of user fields safe to return from the API.
type PublicUser struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	Mobile       string     `json:"mobile,omitempty"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	StorageQuota int64      `json:"storage_quota"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Public strips credential fields for API responses
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Mobile:       u.Mobile,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsActive:     u.IsActive,
		StorageQuota: u.StorageQuota,
		DateJoined:   u.DateJoined,
		LastLogin:    u.LastLogin,
	}
}

// UserRegistration is the payload accepted by the register endpoint
type UserRegistration struct {
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}
