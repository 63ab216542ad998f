package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee designations
const (
	DesignationLawyer    = "lawyer"
	DesignationParalegal = "paralegal"
	DesignationClerk     = "clerk"
	DesignationManager   = "manager"
	DesignationAdmin     = "admin"
)

// Designations lists the accepted values for Employee.Designation
var Designations = []string{
	DesignationLawyer,
	DesignationParalegal,
	DesignationClerk,
	DesignationManager,
	DesignationAdmin,
}

// Employee is the staff profile linked one-to-one with a User account
type Employee struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User       User   `json:"user" gorm:"foreignKey:UserID"`
	CourtID    *uint  `json:"court_id" gorm:"index"`
	EmployeeID string `json:"employee_id" gorm:"uniqueIndex"`

	Designation string `json:"designation" gorm:"not null"`
	Department  string `json:"department"`

	BarRegistrationNumber string     `json:"bar_registration_number"`
	DateOfJoining         time.Time  `json:"date_of_joining"`
	DateOfLeaving         *time.Time `json:"date_of_leaving"`

	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

func (Employee) TableName() string { return "employees" }

// BeforeCreate hook to auto-generate the public EmployeeID
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.EmployeeID == "" {
		e.EmployeeID = "EMP-" + uuid.NewString()
	}
	if e.DateOfJoining.IsZero() {
		e.DateOfJoining = time.Now()
	}
	return nil
}

// ValidDesignation reports whether d is an accepted designation
func ValidDesignation(d string) bool {
	for _, v := range Designations {
		if v == d {
			return true
		}
	}
	return false
}
