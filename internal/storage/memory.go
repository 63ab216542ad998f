package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lexcase/lexcase-backend/internal/models"
)

// MemoryStore holds all data in memory. Used by tests and when
// USE_MEMORY_STORE=true; not for production.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[uint]*models.User
	otps          map[uint]*models.OTPLogin
	resetCodes    map[uint]*models.PasswordResetCode
	courts        map[uint]*models.Court
	judges        map[uint]*models.Judge
	customers     map[uint]*models.Customer
	employees     map[uint]*models.Employee
	cases         map[uint]*models.Case
	caseUpdates   map[uint]*models.CaseUpdate
	hearings      map[uint]*models.Hearing
	documents     map[uint]*models.UploadedDocument
	notifications map[uint]*models.Notification

	nextID uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uint]*models.User),
		otps:          make(map[uint]*models.OTPLogin),
		resetCodes:    make(map[uint]*models.PasswordResetCode),
		courts:        make(map[uint]*models.Court),
		judges:        make(map[uint]*models.Judge),
		customers:     make(map[uint]*models.Customer),
		employees:     make(map[uint]*models.Employee),
		cases:         make(map[uint]*models.Case),
		caseUpdates:   make(map[uint]*models.CaseUpdate),
		hearings:      make(map[uint]*models.Hearing),
		documents:     make(map[uint]*models.UploadedDocument),
		notifications: make(map[uint]*models.Notification),
	}
}

// allocate stamps a fresh ID and timestamps the way GORM would.
// Caller must hold the write lock.
func (m *MemoryStore) allocate(model *gorm.Model) {
	m.nextID++
	model.ID = m.nextID
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now
}

// ===== User operations =====

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.Email = models.NormalizeEmail(user.Email)
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&user.Model)
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	if user.StorageQuota == 0 {
		user.StorageQuota = models.DefaultStorageQuota
	}
	cp := *user
	m.users[user.ID] = &cp
	return user, nil
}

func (m *MemoryStore) GetUser(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllUsers() ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].DateJoined.After(users[j].DateJoined) })
	return users, nil
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

// ChargeStorage checks and charges under the write lock so concurrent uploads
// cannot both fit into the last remaining bytes.
func (m *MemoryStore) ChargeStorage(userID uint, size int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok || user.StorageUsed+size > user.StorageQuota {
		return false, nil
	}
	user.StorageUsed += size
	user.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryStore) ReleaseStorage(userID uint, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.StorageUsed -= size
	if user.StorageUsed < 0 {
		user.StorageUsed = 0
	}
	user.UpdatedAt = time.Now()
	return nil
}

// ===== OTP operations =====

func (m *MemoryStore) CreateOTP(otp *models.OTPLogin) (*models.OTPLogin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&otp.Model)
	if otp.ExpiresAt.IsZero() {
		otp.ExpiresAt = time.Now().Add(models.OTPLoginTTL)
	}
	cp := *otp
	m.otps[otp.ID] = &cp
	return otp, nil
}

func (m *MemoryStore) GetLatestUnverifiedOTP(mobile, code string) (*models.OTPLogin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *models.OTPLogin
	for _, o := range m.otps {
		if o.Mobile != mobile || o.Code != code || o.IsVerified {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *MemoryStore) ClaimOTP(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	otp, ok := m.otps[id]
	if !ok || otp.IsVerified {
		return false, nil
	}
	otp.IsVerified = true
	otp.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryStore) DeleteExpiredOTPs() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	now := time.Now()
	for id, o := range m.otps {
		if o.ExpiresAt.Before(now) {
			delete(m.otps, id)
			deleted++
		}
	}
	return deleted, nil
}

// ===== Password reset operations =====

func (m *MemoryStore) CreateResetCode(code *models.PasswordResetCode) (*models.PasswordResetCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rc := range m.resetCodes {
		if rc.Code == code.Code {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&code.Model)
	if code.ExpiresAt.IsZero() {
		code.ExpiresAt = time.Now().Add(models.PasswordResetTTL)
	}
	cp := *code
	m.resetCodes[code.ID] = &cp
	return code, nil
}

func (m *MemoryStore) GetUnusedResetCode(code string) (*models.PasswordResetCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rc := range m.resetCodes {
		if rc.Code == code && !rc.IsUsed {
			cp := *rc
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ConsumeResetCode(id uint, userID uint, passwordHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rc, ok := m.resetCodes[id]
	if !ok || rc.IsUsed {
		return false, nil
	}
	user, ok := m.users[userID]
	if !ok {
		return false, ErrNotFound
	}
	rc.IsUsed = true
	rc.UpdatedAt = time.Now()
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryStore) DeleteExpiredResetCodes() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	now := time.Now()
	for id, rc := range m.resetCodes {
		if rc.ExpiresAt.Before(now) {
			delete(m.resetCodes, id)
			deleted++
		}
	}
	return deleted, nil
}

// ===== Court operations =====

func (m *MemoryStore) CreateCourt(court *models.Court) (*models.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&court.Model)
	cp := *court
	m.courts[court.ID] = &cp
	return court, nil
}

func (m *MemoryStore) GetCourt(id uint) (*models.Court, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	court, ok := m.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *court
	return &cp, nil
}

func (m *MemoryStore) GetAllCourts() ([]*models.Court, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	courts := make([]*models.Court, 0, len(m.courts))
	for _, c := range m.courts {
		cp := *c
		courts = append(courts, &cp)
	}
	sort.Slice(courts, func(i, j int) bool { return courts[i].Name < courts[j].Name })
	return courts, nil
}

func (m *MemoryStore) UpdateCourt(court *models.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courts[court.ID]; !ok {
		return ErrNotFound
	}
	court.UpdatedAt = time.Now()
	cp := *court
	m.courts[court.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteCourt(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courts[id]; !ok {
		return ErrNotFound
	}
	delete(m.courts, id)
	return nil
}

// ===== Judge operations =====

func (m *MemoryStore) CreateJudge(judge *models.Judge) (*models.Judge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, j := range m.judges {
		if j.BarID == judge.BarID {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&judge.Model)
	cp := *judge
	m.judges[judge.ID] = &cp
	return judge, nil
}

func (m *MemoryStore) GetJudge(id uint) (*models.Judge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	judge, ok := m.judges[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *judge
	return &cp, nil
}

func (m *MemoryStore) GetAllJudges() ([]*models.Judge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	judges := make([]*models.Judge, 0, len(m.judges))
	for _, j := range m.judges {
		cp := *j
		judges = append(judges, &cp)
	}
	sort.Slice(judges, func(i, j int) bool { return judges[i].Name < judges[j].Name })
	return judges, nil
}

func (m *MemoryStore) UpdateJudge(judge *models.Judge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.judges[judge.ID]; !ok {
		return ErrNotFound
	}
	judge.UpdatedAt = time.Now()
	cp := *judge
	m.judges[judge.ID] = &cp
	return nil
}

// ===== Customer operations =====

func (m *MemoryStore) CreateCustomer(customer *models.Customer) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.customers {
		if c.UserID == customer.UserID {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&customer.Model)
	if customer.CustomerID == "" {
		customer.CustomerID = "CUS-" + uuid.NewString()
	}
	cp := *customer
	m.customers[customer.ID] = &cp
	return customer, nil
}

func (m *MemoryStore) GetCustomer(id uint) (*models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customer, ok := m.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *customer
	return &cp, nil
}

func (m *MemoryStore) GetCustomerByUser(userID uint) (*models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.customers {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllCustomers() ([]*models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		cp := *c
		customers = append(customers, &cp)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].CreatedAt.After(customers[j].CreatedAt) })
	return customers, nil
}

func (m *MemoryStore) UpdateCustomer(customer *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.customers[customer.ID]; !ok {
		return ErrNotFound
	}
	customer.UpdatedAt = time.Now()
	cp := *customer
	m.customers[customer.ID] = &cp
	return nil
}

// ===== Employee operations =====

func (m *MemoryStore) CreateEmployee(employee *models.Employee) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.employees {
		if e.UserID == employee.UserID {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&employee.Model)
	if employee.EmployeeID == "" {
		employee.EmployeeID = "EMP-" + uuid.NewString()
	}
	if employee.DateOfJoining.IsZero() {
		employee.DateOfJoining = time.Now()
	}
	cp := *employee
	m.employees[employee.ID] = &cp
	return employee, nil
}

func (m *MemoryStore) GetEmployee(id uint) (*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	employee, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *employee
	return &cp, nil
}

func (m *MemoryStore) GetEmployeeByUser(userID uint) (*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.employees {
		if e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllEmployees() ([]*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	employees := make([]*models.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		cp := *e
		employees = append(employees, &cp)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].CreatedAt.After(employees[j].CreatedAt) })
	return employees, nil
}

func (m *MemoryStore) UpdateEmployee(employee *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[employee.ID]; !ok {
		return ErrNotFound
	}
	employee.UpdatedAt = time.Now()
	cp := *employee
	m.employees[employee.ID] = &cp
	return nil
}

// ===== Case operations =====

func (m *MemoryStore) CreateCase(kase *models.Case) (*models.Case, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.cases {
		if kase.CaseNumber != "" && c.CaseNumber == kase.CaseNumber {
			return nil, ErrDuplicate
		}
	}
	m.allocate(&kase.Model)
	if kase.CaseNumber == "" {
		kase.CaseNumber = time.Now().Format("CASE20060102") + "-" + uuid.NewString()[:8]
	}
	if kase.FilingDate.IsZero() {
		kase.FilingDate = time.Now()
	}
	cp := *kase
	m.cases[kase.ID] = &cp
	return kase, nil
}

func (m *MemoryStore) GetCase(id uint) (*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kase, ok := m.cases[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *kase
	return &cp, nil
}

func (m *MemoryStore) GetCaseByNumber(caseNumber string) (*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.cases {
		if c.CaseNumber == caseNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllCases() ([]*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cases := make([]*models.Case, 0, len(m.cases))
	for _, c := range m.cases {
		cp := *c
		cases = append(cases, &cp)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].CreatedAt.After(cases[j].CreatedAt) })
	return cases, nil
}

func (m *MemoryStore) GetCasesByCustomer(customerID uint) ([]*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var cases []*models.Case
	for _, c := range m.cases {
		if c.CustomerID == customerID {
			cp := *c
			cases = append(cases, &cp)
		}
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].CreatedAt.After(cases[j].CreatedAt) })
	return cases, nil
}

func (m *MemoryStore) UpdateCase(kase *models.Case) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cases[kase.ID]; !ok {
		return ErrNotFound
	}
	kase.UpdatedAt = time.Now()
	cp := *kase
	m.cases[kase.ID] = &cp
	return nil
}

func (m *MemoryStore) CreateCaseUpdate(update *models.CaseUpdate) (*models.CaseUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&update.Model)
	cp := *update
	m.caseUpdates[update.ID] = &cp
	return update, nil
}

func (m *MemoryStore) GetCaseUpdates(caseID uint) ([]*models.CaseUpdate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var updates []*models.CaseUpdate
	for _, u := range m.caseUpdates {
		if u.CaseID == caseID {
			cp := *u
			updates = append(updates, &cp)
		}
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].CreatedAt.After(updates[j].CreatedAt) })
	return updates, nil
}

// ===== Hearing operations =====

func (m *MemoryStore) CreateHearing(hearing *models.Hearing) (*models.Hearing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&hearing.Model)
	if hearing.Status == "" {
		hearing.Status = models.HearingScheduled
	}
	cp := *hearing
	m.hearings[hearing.ID] = &cp
	return hearing, nil
}

func (m *MemoryStore) GetHearing(id uint) (*models.Hearing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hearing, ok := m.hearings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *hearing
	return &cp, nil
}

func (m *MemoryStore) GetHearingsByCase(caseID uint) ([]*models.Hearing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hearings []*models.Hearing
	for _, h := range m.hearings {
		if h.CaseID == caseID {
			cp := *h
			hearings = append(hearings, &cp)
		}
	}
	sort.Slice(hearings, func(i, j int) bool { return hearings[i].HearingDate.Before(hearings[j].HearingDate) })
	return hearings, nil
}

func (m *MemoryStore) UpdateHearing(hearing *models.Hearing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hearings[hearing.ID]; !ok {
		return ErrNotFound
	}
	hearing.UpdatedAt = time.Now()
	cp := *hearing
	m.hearings[hearing.ID] = &cp
	return nil
}

// ===== Document operations =====

func (m *MemoryStore) CreateDocument(doc *models.UploadedDocument) (*models.UploadedDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&doc.Model)
	if doc.DocumentID == "" {
		doc.DocumentID = "DOC-" + uuid.NewString()
	}
	cp := *doc
	m.documents[doc.ID] = &cp
	return doc, nil
}

func (m *MemoryStore) GetDocument(id uint) (*models.UploadedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (m *MemoryStore) GetAllDocuments() ([]*models.UploadedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*models.UploadedDocument, 0, len(m.documents))
	for _, d := range m.documents {
		cp := *d
		docs = append(docs, &cp)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

func (m *MemoryStore) DeleteDocument(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[id]; !ok {
		return ErrNotFound
	}
	delete(m.documents, id)
	return nil
}

// ===== Notification operations =====

func (m *MemoryStore) CreateNotification(n *models.Notification) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocate(&n.Model)
	cp := *n
	m.notifications[n.ID] = &cp
	return n, nil
}

func (m *MemoryStore) GetNotificationsByUser(userID uint) ([]*models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var notifications []*models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			cp := *n
			notifications = append(notifications, &cp)
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].CreatedAt.After(notifications[j].CreatedAt) })
	return notifications, nil
}

func (m *MemoryStore) MarkNotificationRead(id uint, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[id]
	if !ok || n.UserID != userID || n.IsRead {
		return ErrNotFound
	}
	n.MarkRead()
	n.UpdatedAt = time.Now()
	return nil
}
