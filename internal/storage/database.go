package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lexcase/lexcase-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// ===== User operations =====

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}

func (s *DatabaseStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetAllUsers() ([]*models.User, error) {
	var users []*models.User
	if err := s.db.Order("date_joined DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	return translateErr(s.db.Save(user).Error)
}

// ChargeStorage takes the quota charge with a single conditional update so
// concurrent uploads cannot both fit into the last remaining bytes.
func (s *DatabaseStore) ChargeStorage(userID uint, size int64) (bool, error) {
	res := s.db.Model(&models.User{}).
		Where("id = ? AND storage_used + ? <= storage_quota", userID, size).
		Update("storage_used", gorm.Expr("storage_used + ?", size))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *DatabaseStore) ReleaseStorage(userID uint, size int64) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("storage_used", gorm.Expr("GREATEST(storage_used - ?, 0)", size)).Error
}

// ===== OTP operations =====

func (s *DatabaseStore) CreateOTP(otp *models.OTPLogin) (*models.OTPLogin, error) {
	if err := s.db.Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

// GetLatestUnverifiedOTP selects the most recently created matching code that
// has not been verified yet. Already-verified rows never match.
func (s *DatabaseStore) GetLatestUnverifiedOTP(mobile, code string) (*models.OTPLogin, error) {
	var otp models.OTPLogin
	err := s.db.
		Where("mobile = ? AND code = ? AND is_verified = ?", mobile, code, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &otp, nil
}

// ClaimOTP flips the verified flag with a single conditional update keyed on
// the unverified predicate. Under concurrent verification exactly one caller
// observes a row count of 1.
func (s *DatabaseStore) ClaimOTP(id uint) (bool, error) {
	res := s.db.Model(&models.OTPLogin{}).
		Where("id = ? AND is_verified = ?", id, false).
		Update("is_verified", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *DatabaseStore) DeleteExpiredOTPs() (int64, error) {
	res := s.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.OTPLogin{})
	return res.RowsAffected, res.Error
}

// ===== Password reset operations =====

func (s *DatabaseStore) CreateResetCode(code *models.PasswordResetCode) (*models.PasswordResetCode, error) {
	if err := s.db.Create(code).Error; err != nil {
		return nil, translateErr(err)
	}
	return code, nil
}

func (s *DatabaseStore) GetUnusedResetCode(code string) (*models.PasswordResetCode, error) {
	var rc models.PasswordResetCode
	err := s.db.Where("code = ? AND is_used = ?", code, false).First(&rc).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &rc, nil
}

// ConsumeResetCode commits the password change and the used flip together.
// If either side fails the transaction rolls back, so the code is never left
// in a state allowing replay and the password never changes without the code
// being consumed.
func (s *DatabaseStore) ConsumeResetCode(id uint, userID uint, passwordHash string) (bool, error) {
	consumed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetCode{}).
			Where("id = ? AND is_used = ?", id, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			// Lost the race to another confirm; nothing to commit.
			return nil
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("password_hash", passwordHash).Error; err != nil {
			return err
		}
		consumed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}
	return consumed, nil
}

func (s *DatabaseStore) DeleteExpiredResetCodes() (int64, error) {
	res := s.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.PasswordResetCode{})
	return res.RowsAffected, res.Error
}

// ===== Court operations =====

func (s *DatabaseStore) CreateCourt(court *models.Court) (*models.Court, error) {
	if err := s.db.Create(court).Error; err != nil {
		return nil, err
	}
	return court, nil
}

func (s *DatabaseStore) GetCourt(id uint) (*models.Court, error) {
	var court models.Court
	if err := s.db.First(&court, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &court, nil
}

func (s *DatabaseStore) GetAllCourts() ([]*models.Court, error) {
	var courts []*models.Court
	if err := s.db.Order("name").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (s *DatabaseStore) UpdateCourt(court *models.Court) error {
	return translateErr(s.db.Save(court).Error)
}

func (s *DatabaseStore) DeleteCourt(id uint) error {
	res := s.db.Delete(&models.Court{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ===== Judge operations =====

func (s *DatabaseStore) CreateJudge(judge *models.Judge) (*models.Judge, error) {
	if err := s.db.Create(judge).Error; err != nil {
		return nil, translateErr(err)
	}
	return judge, nil
}

func (s *DatabaseStore) GetJudge(id uint) (*models.Judge, error) {
	var judge models.Judge
	if err := s.db.First(&judge, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &judge, nil
}

func (s *DatabaseStore) GetAllJudges() ([]*models.Judge, error) {
	var judges []*models.Judge
	if err := s.db.Order("name").Find(&judges).Error; err != nil {
		return nil, err
	}
	return judges, nil
}

func (s *DatabaseStore) UpdateJudge(judge *models.Judge) error {
	return translateErr(s.db.Save(judge).Error)
}

// ===== Customer operations =====

func (s *DatabaseStore) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	if err := s.db.Create(customer).Error; err != nil {
		return nil, translateErr(err)
	}
	return customer, nil
}

func (s *DatabaseStore) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Preload("User").First(&customer, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &customer, nil
}

func (s *DatabaseStore) GetCustomerByUser(userID uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Preload("User").Where("user_id = ?", userID).First(&customer).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &customer, nil
}

func (s *DatabaseStore) GetAllCustomers() ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := s.db.Preload("User").Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *DatabaseStore) UpdateCustomer(customer *models.Customer) error {
	return translateErr(s.db.Save(customer).Error)
}

// ===== Employee operations =====

func (s *DatabaseStore) CreateEmployee(employee *models.Employee) (*models.Employee, error) {
	if err := s.db.Create(employee).Error; err != nil {
		return nil, translateErr(err)
	}
	return employee, nil
}

func (s *DatabaseStore) GetEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Preload("User").First(&employee, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &employee, nil
}

func (s *DatabaseStore) GetEmployeeByUser(userID uint) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Preload("User").Where("user_id = ?", userID).First(&employee).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &employee, nil
}

func (s *DatabaseStore) GetAllEmployees() ([]*models.Employee, error) {
	var employees []*models.Employee
	if err := s.db.Preload("User").Order("created_at DESC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *DatabaseStore) UpdateEmployee(employee *models.Employee) error {
	return translateErr(s.db.Save(employee).Error)
}

// ===== Case operations =====

func (s *DatabaseStore) CreateCase(kase *models.Case) (*models.Case, error) {
	if err := s.db.Create(kase).Error; err != nil {
		return nil, translateErr(err)
	}
	return kase, nil
}

func (s *DatabaseStore) GetCase(id uint) (*models.Case, error) {
	var kase models.Case
	if err := s.db.First(&kase, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &kase, nil
}

func (s *DatabaseStore) GetCaseByNumber(caseNumber string) (*models.Case, error) {
	var kase models.Case
	err := s.db.Where("case_number = ?", caseNumber).First(&kase).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &kase, nil
}

func (s *DatabaseStore) GetAllCases() ([]*models.Case, error) {
	var cases []*models.Case
	if err := s.db.Order("created_at DESC").Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

func (s *DatabaseStore) GetCasesByCustomer(customerID uint) ([]*models.Case, error) {
	var cases []*models.Case
	err := s.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (s *DatabaseStore) UpdateCase(kase *models.Case) error {
	return translateErr(s.db.Save(kase).Error)
}

func (s *DatabaseStore) CreateCaseUpdate(update *models.CaseUpdate) (*models.CaseUpdate, error) {
	if err := s.db.Create(update).Error; err != nil {
		return nil, err
	}
	return update, nil
}

func (s *DatabaseStore) GetCaseUpdates(caseID uint) ([]*models.CaseUpdate, error) {
	var updates []*models.CaseUpdate
	err := s.db.Where("case_id = ?", caseID).Order("created_at DESC").Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// ===== Hearing operations =====

func (s *DatabaseStore) CreateHearing(hearing *models.Hearing) (*models.Hearing, error) {
	if err := s.db.Create(hearing).Error; err != nil {
		return nil, err
	}
	return hearing, nil
}

func (s *DatabaseStore) GetHearing(id uint) (*models.Hearing, error) {
	var hearing models.Hearing
	if err := s.db.First(&hearing, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &hearing, nil
}

func (s *DatabaseStore) GetHearingsByCase(caseID uint) ([]*models.Hearing, error) {
	var hearings []*models.Hearing
	err := s.db.Where("case_id = ?", caseID).Order("hearing_date").Find(&hearings).Error
	if err != nil {
		return nil, err
	}
	return hearings, nil
}

func (s *DatabaseStore) UpdateHearing(hearing *models.Hearing) error {
	return translateErr(s.db.Save(hearing).Error)
}

// ===== Document operations =====

func (s *DatabaseStore) CreateDocument(doc *models.UploadedDocument) (*models.UploadedDocument, error) {
	if err := s.db.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DatabaseStore) GetDocument(id uint) (*models.UploadedDocument, error) {
	var doc models.UploadedDocument
	if err := s.db.First(&doc, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &doc, nil
}

func (s *DatabaseStore) GetAllDocuments() ([]*models.UploadedDocument, error) {
	var docs []*models.UploadedDocument
	if err := s.db.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DatabaseStore) DeleteDocument(id uint) error {
	res := s.db.Delete(&models.UploadedDocument{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ===== Notification operations =====

func (s *DatabaseStore) CreateNotification(n *models.Notification) (*models.Notification, error) {
	if err := s.db.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (s *DatabaseStore) GetNotificationsByUser(userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *DatabaseStore) MarkNotificationRead(id uint, userID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
