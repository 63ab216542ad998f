package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business types for customer profiles
const (
	BusinessTypeIndividual = "individual"
	BusinessTypeBusiness   = "business"
	BusinessTypeCorporate  = "corporate"
	BusinessTypeNGO        = "ngo"
)

// Communication preferences
const (
	ContactByEmail = "email"
	ContactByPhone = "phone"
	ContactByBoth  = "both"
)

// Customer is the client-facing profile linked one-to-one with a User account
type Customer struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User       User   `json:"user" gorm:"foreignKey:UserID"`
	CustomerID string `json:"customer_id" gorm:"uniqueIndex"`

	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`

	TaxID                   string `json:"tax_id"`
	BusinessType            string `json:"business_type" gorm:"default:individual"`
	PreferredLanguage       string `json:"preferred_language" gorm:"default:en"`
	CommunicationPreference string `json:"communication_preference" gorm:"default:both"`

	IsActive   bool   `json:"is_active" gorm:"default:true"`
	IsVerified bool   `json:"is_verified" gorm:"default:false"`
	Notes      string `json:"notes"` // internal notes, not shown to the customer
}

func (Customer) TableName() string { return "customers" }

// BeforeCreate hook to auto-generate the public CustomerID
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.CustomerID == "" {
		c.CustomerID = "CUS-" + uuid.NewString()
	}
	return nil
}
