package storage

import (
	"errors"

	"github.com/lexcase/lexcase-backend/internal/models"
)

// Sentinel errors shared by all store implementations.
var (
	// ErrNotFound means no row matched the lookup predicate. Callers must not
	// leak whether the identifier itself exists.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a uniqueness constraint was violated.
	ErrDuplicate = errors.New("record already exists")
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]*models.User, error)
	UpdateUser(user *models.User) error
	// ChargeStorage atomically adds size to the user's storage_used iff the
	// result stays within the quota; reports whether the charge was taken.
	ChargeStorage(userID uint, size int64) (bool, error)
	// ReleaseStorage subtracts size from the user's storage_used, floored at zero.
	ReleaseStorage(userID uint, size int64) error

	// OTP operations
	CreateOTP(otp *models.OTPLogin) (*models.OTPLogin, error)
	GetLatestUnverifiedOTP(mobile, code string) (*models.OTPLogin, error)
	ClaimOTP(id uint) (bool, error)
	DeleteExpiredOTPs() (int64, error)

	// Password reset operations
	CreateResetCode(code *models.PasswordResetCode) (*models.PasswordResetCode, error)
	GetUnusedResetCode(code string) (*models.PasswordResetCode, error)
	ConsumeResetCode(id uint, userID uint, passwordHash string) (bool, error)
	DeleteExpiredResetCodes() (int64, error)

	// Court operations
	CreateCourt(court *models.Court) (*models.Court, error)
	GetCourt(id uint) (*models.Court, error)
	GetAllCourts() ([]*models.Court, error)
	UpdateCourt(court *models.Court) error
	DeleteCourt(id uint) error

	// Judge operations
	CreateJudge(judge *models.Judge) (*models.Judge, error)
	GetJudge(id uint) (*models.Judge, error)
	GetAllJudges() ([]*models.Judge, error)
	UpdateJudge(judge *models.Judge) error

	// Customer operations
	CreateCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomer(id uint) (*models.Customer, error)
	GetCustomerByUser(userID uint) (*models.Customer, error)
	GetAllCustomers() ([]*models.Customer, error)
	UpdateCustomer(customer *models.Customer) error

	// Employee operations
	CreateEmployee(employee *models.Employee) (*models.Employee, error)
	GetEmployee(id uint) (*models.Employee, error)
	GetEmployeeByUser(userID uint) (*models.Employee, error)
	GetAllEmployees() ([]*models.Employee, error)
	UpdateEmployee(employee *models.Employee) error

	// Case operations
	CreateCase(kase *models.Case) (*models.Case, error)
	GetCase(id uint) (*models.Case, error)
	GetCaseByNumber(caseNumber string) (*models.Case, error)
	GetAllCases() ([]*models.Case, error)
	GetCasesByCustomer(customerID uint) ([]*models.Case, error)
	UpdateCase(kase *models.Case) error
	CreateCaseUpdate(update *models.CaseUpdate) (*models.CaseUpdate, error)
	GetCaseUpdates(caseID uint) ([]*models.CaseUpdate, error)

	// Hearing operations
	CreateHearing(hearing *models.Hearing) (*models.Hearing, error)
	GetHearing(id uint) (*models.Hearing, error)
	GetHearingsByCase(caseID uint) ([]*models.Hearing, error)
	UpdateHearing(hearing *models.Hearing) error

	// Document operations
	CreateDocument(doc *models.UploadedDocument) (*models.UploadedDocument, error)
	GetDocument(id uint) (*models.UploadedDocument, error)
	GetAllDocuments() ([]*models.UploadedDocument, error)
	DeleteDocument(id uint) error

	// Notification operations
	CreateNotification(n *models.Notification) (*models.Notification, error)
	GetNotificationsByUser(userID uint) ([]*models.Notification, error)
	MarkNotificationRead(id uint, userID uint) error
}
