package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CaseCategory groups cases: Civil, Criminal, Family, Corporate, etc.
type CaseCategory struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

func (CaseCategory) TableName() string { return "case_categories" }

// CaseStatus is a workflow state: Filed, Pending, Hearing Scheduled, Closed, etc.
type CaseStatus struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	ColorCode   string `json:"color_code" gorm:"default:#000000"`
	Order       int    `json:"order" gorm:"default:0"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

func (CaseStatus) TableName() string { return "case_statuses" }

// CasePriority is a priority level: 1=Low, 2=Medium, 3=High, 4=Urgent
type CasePriority struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	Level     int    `json:"level" gorm:"uniqueIndex;not null"`
	ColorCode string `json:"color_code" gorm:"default:#000000"`
}

func (CasePriority) TableName() string { return "case_priorities" }

// Case represents a legal case handled by the firm
type Case struct {
	gorm.Model
	CaseNumber  string `json:"case_number" gorm:"uniqueIndex;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`

	CategoryID uint `json:"category_id" gorm:"not null"`
	StatusID   uint `json:"status_id" gorm:"not null"`
	PriorityID uint `json:"priority_id" gorm:"not null"`

	CustomerID     uint   `json:"customer_id" gorm:"not null;index"`
	OpposingParty  string `json:"opposing_party"`
	OpposingLawyer string `json:"opposing_lawyer"`

	CourtID uint  `json:"court_id" gorm:"not null"`
	JudgeID *uint `json:"judge_id"`

	AssignedLawyerID uint `json:"assigned_lawyer_id" gorm:"not null"`

	FilingDate          time.Time  `json:"filing_date"`
	HearingDate         *time.Time `json:"hearing_date"`
	NextHearingDate     *time.Time `json:"next_hearing_date" gorm:"index"`
	ExpectedClosureDate *time.Time `json:"expected_closure_date"`
	ActualClosureDate   *time.Time `json:"actual_closure_date"`

	EstimatedValue float64 `json:"estimated_value" gorm:"type:decimal(15,2);default:0"`
	FeesCharged    float64 `json:"fees_charged" gorm:"type:decimal(12,2);default:0"`
	FeesPaid       float64 `json:"fees_paid" gorm:"type:decimal(12,2);default:0"`

	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsArchived  bool   `json:"is_archived" gorm:"default:false"`
	CreatedByID *uint  `json:"created_by_id"`
	Notes       string `json:"internal_notes"` // not visible to the customer
}

func (Case) TableName() string { return "cases" }

// BeforeCreate hook to auto-generate a case number and default the filing date
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.CaseNumber == "" {
		c.CaseNumber = fmt.Sprintf("CASE%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	if c.FilingDate.IsZero() {
		c.FilingDate = time.Now()
	}
	return nil
}

// IsOverdue reports whether the case passed its expected closure date without closing
func (c *Case) IsOverdue() bool {
	if c.ExpectedClosureDate != nil && c.ActualClosureDate == nil {
		return time.Now().After(*c.ExpectedClosureDate)
	}
	return false
}

// DaysPending counts days since filing, frozen at closure for closed cases
func (c *Case) DaysPending() int {
	end := time.Now()
	if c.ActualClosureDate != nil {
		end = *c.ActualClosureDate
	}
	return int(end.Sub(c.FilingDate).Hours() / 24)
}

// OutstandingFees is fees charged minus fees paid
func (c *Case) OutstandingFees() float64 {
	return c.FeesCharged - c.FeesPaid
}

// CaseUpdate is a timeline entry for a case
type CaseUpdate struct {
	gorm.Model
	CaseID      uint   `json:"case_id" gorm:"not null;index"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	// hearing, document, judgment, motion, note, status_change
	UpdateType          string `json:"update_type" gorm:"default:note"`
	CreatedByID         *uint  `json:"created_by_id"`
	IsVisibleToCustomer bool   `json:"is_visible_to_customer" gorm:"default:true"`
}

func (CaseUpdate) TableName() string { return "case_updates" }

// Hearing statuses
const (
	HearingScheduled  = "scheduled"
	HearingInProgress = "in_progress"
	HearingCompleted  = "completed"
	HearingPostponed  = "postponed"
	HearingCancelled  = "cancelled"
)

// Hearing is a scheduled court appearance for a case
type Hearing struct {
	gorm.Model
	CaseID      uint      `json:"case_id" gorm:"not null;index"`
	HearingDate time.Time `json:"hearing_date" gorm:"not null;index"`
	// first_hearing, evidence, arguments, final, misc
	HearingType string `json:"hearing_type" gorm:"default:misc"`
	Location    string `json:"location"`
	JudgeID     *uint  `json:"judge_id"`

	Agenda          string     `json:"agenda"`
	Notes           string     `json:"notes"`
	Outcome         string     `json:"outcome"`
	NextHearingDate *time.Time `json:"next_hearing_date"`

	Status       string `json:"status" gorm:"default:scheduled"`
	ReminderSent bool   `json:"reminder_sent" gorm:"default:false"`
	CreatedByID  *uint  `json:"created_by_id"`
}

func (Hearing) TableName() string { return "hearings" }
