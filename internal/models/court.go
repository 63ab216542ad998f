package models

import (
	"time"

	"gorm.io/gorm"
)

// Country is a reference table for court locations
type Country struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Code      string `json:"code" gorm:"uniqueIndex;not null"`
	PhoneCode string `json:"phone_code"`
}

func (Country) TableName() string { return "countries" }

// State belongs to a country
type State struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CountryID uint   `json:"country_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"not null"`
	Code      string `json:"code"`
}

func (State) TableName() string { return "states" }

// City belongs to a state
type City struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	StateID uint   `json:"state_id" gorm:"not null;index"`
	Name    string `json:"name" gorm:"not null"`
}

func (City) TableName() string { return "cities" }

// Court types recognized by the firm
const (
	CourtTypeSupreme    = "supreme"
	CourtTypeHigh       = "high"
	CourtTypeDistrict   = "district"
	CourtTypeMagistrate = "magistrate"
	CourtTypeTribunal   = "tribunal"
	CourtTypeOther      = "other"
)

// CourtTypes lists the accepted values for Court.CourtType
var CourtTypes = []string{
	CourtTypeSupreme,
	CourtTypeHigh,
	CourtTypeDistrict,
	CourtTypeMagistrate,
	CourtTypeTribunal,
	CourtTypeOther,
}

// Court represents a court the firm appears before
type Court struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	CourtType string `json:"court_type" gorm:"not null"`
	Address   string `json:"address"`
	CountryID *uint  `json:"country_id"`
	StateID   *uint  `json:"state_id"`
	CityID    *uint  `json:"city_id"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
	ManagerID *uint  `json:"manager_id"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

func (Court) TableName() string { return "courts" }

// ValidCourtType reports whether t is an accepted court type
func ValidCourtType(t string) bool {
	for _, v := range CourtTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Judge represents a presiding judge, optionally attached to a court
type Judge struct {
	gorm.Model
	Name            string     `json:"name" gorm:"not null"`
	BarID           string     `json:"bar_id" gorm:"uniqueIndex;not null"`
	CourtID         *uint      `json:"court_id" gorm:"index"`
	Email           string     `json:"email"`
	Mobile          string     `json:"mobile"`
	Specialization  string     `json:"specialization"`
	AppointmentDate *time.Time `json:"appointment_date"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
}

func (Judge) TableName() string { return "judges" }
