package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/middleware"
	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// CaseHandler handles case, timeline, and hearing requests
type CaseHandler struct {
	store storage.Store
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(store storage.Store) *CaseHandler {
	return &CaseHandler{store: store}
}

// caseResponse decorates a case with derived read-only figures
func caseResponse(kase *models.Case) fiber.Map {
	return fiber.Map{
		"case":             kase,
		"is_overdue":       kase.IsOverdue(),
		"days_pending":     kase.DaysPending(),
		"outstanding_fees": kase.OutstandingFees(),
	}
}

// Create files a new case
func (h *CaseHandler) Create(c *fiber.Ctx) error {
	var kase models.Case
	if err := c.BodyParser(&kase); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if kase.Title == "" || kase.CustomerID == 0 || kase.CourtID == 0 || kase.AssignedLawyerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "title, customer_id, court_id, and assigned_lawyer_id are required",
		})
	}
	if _, err := h.store.GetCustomer(kase.CustomerID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"customer_id": "no such customer"})
	}
	if _, err := h.store.GetCourt(kase.CourtID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"court_id": "no such court"})
	}
	creator := middleware.UserID(c)
	kase.CreatedByID = &creator
	kase.IsActive = true

	created, err := h.store.CreateCase(&kase)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"case_number": "case with this number already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to create case"})
	}
	return c.Status(fiber.StatusCreated).JSON(caseResponse(created))
}

// List returns all cases
func (h *CaseHandler) List(c *fiber.Ctx) error {
	cases, err := h.store.GetAllCases()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list cases"})
	}
	return c.JSON(cases)
}

// Get returns a case with its derived figures
func (h *CaseHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	kase, err := h.store.GetCase(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	return c.JSON(caseResponse(kase))
}

// Update edits a case
func (h *CaseHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	kase, err := h.store.GetCase(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	if err := c.BodyParser(kase); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if err := h.store.UpdateCase(kase); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update case"})
	}
	return c.JSON(caseResponse(kase))
}

// AddUpdate appends a timeline entry to a case
func (h *CaseHandler) AddUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	if _, err := h.store.GetCase(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}

	var update models.CaseUpdate
	if err := c.BodyParser(&update); err != nil || update.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "title is required"})
	}
	update.CaseID = id
	creator := middleware.UserID(c)
	update.CreatedByID = &creator
	if update.UpdateType == "" {
		update.UpdateType = "note"
	}

	created, err := h.store.CreateCaseUpdate(&update)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to add update"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Updates lists the timeline of a case
func (h *CaseHandler) Updates(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	updates, err := h.store.GetCaseUpdates(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list updates"})
	}
	return c.JSON(updates)
}

// ScheduleHearing creates a hearing for a case and rolls the case's next
// hearing date forward.
func (h *CaseHandler) ScheduleHearing(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	kase, err := h.store.GetCase(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}

	var hearing models.Hearing
	if err := c.BodyParser(&hearing); err != nil || hearing.HearingDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "hearing_date is required"})
	}
	hearing.CaseID = id
	creator := middleware.UserID(c)
	hearing.CreatedByID = &creator
	if hearing.Status == "" {
		hearing.Status = models.HearingScheduled
	}

	created, err := h.store.CreateHearing(&hearing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to schedule hearing"})
	}

	if kase.NextHearingDate == nil || hearing.HearingDate.Before(*kase.NextHearingDate) {
		kase.NextHearingDate = &hearing.HearingDate
		_ = h.store.UpdateCase(kase)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Hearings lists the hearings of a case in date order
func (h *CaseHandler) Hearings(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	hearings, err := h.store.GetHearingsByCase(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list hearings"})
	}
	return c.JSON(hearings)
}

// UpdateHearing edits a hearing (status, outcome, notes)
func (h *CaseHandler) UpdateHearing(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	hearing, err := h.store.GetHearing(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	if err := c.BodyParser(hearing); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if err := h.store.UpdateHearing(hearing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update hearing"})
	}
	return c.JSON(hearing)
}
