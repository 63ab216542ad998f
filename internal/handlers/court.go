package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// CourtHandler handles court and judge requests
type CourtHandler struct {
	store storage.Store
}

// NewCourtHandler creates a new court handler
func NewCourtHandler(store storage.Store) *CourtHandler {
	return &CourtHandler{store: store}
}

// CreateCourt handles court registration
func (h *CourtHandler) CreateCourt(c *fiber.Ctx) error {
	var court models.Court
	if err := c.BodyParser(&court); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}
	if court.Name == "" || !models.ValidCourtType(court.CourtType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "name and a valid court_type are required",
		})
	}
	court.IsActive = true

	created, err := h.store.CreateCourt(&court)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to create court",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListCourts returns all courts ordered by name
func (h *CourtHandler) ListCourts(c *fiber.Ctx) error {
	courts, err := h.store.GetAllCourts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to list courts",
		})
	}
	return c.JSON(courts)
}

// GetCourt returns a court by id
func (h *CourtHandler) GetCourt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	court, err := h.store.GetCourt(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	return c.JSON(court)
}

// UpdateCourt edits a court record
func (h *CourtHandler) UpdateCourt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	court, err := h.store.GetCourt(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	if err := c.BodyParser(court); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if !models.ValidCourtType(court.CourtType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid court_type"})
	}
	if err := h.store.UpdateCourt(court); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update court"})
	}
	return c.JSON(court)
}

// DeleteCourt removes a court
func (h *CourtHandler) DeleteCourt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	if err := h.store.DeleteCourt(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to delete court"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateJudge handles judge registration
func (h *CourtHandler) CreateJudge(c *fiber.Ctx) error {
	var judge models.Judge
	if err := c.BodyParser(&judge); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if judge.Name == "" || judge.BarID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "name and bar_id are required",
		})
	}
	judge.IsActive = true

	created, err := h.store.CreateJudge(&judge)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"bar_id": "judge with this bar id already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to create judge"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListJudges returns all judges ordered by name
func (h *CourtHandler) ListJudges(c *fiber.Ctx) error {
	judges, err := h.store.GetAllJudges()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list judges"})
	}
	return c.JSON(judges)
}

// GetJudge returns a judge by id
func (h *CourtHandler) GetJudge(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	judge, err := h.store.GetJudge(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	return c.JSON(judge)
}

// UpdateJudge edits a judge record
func (h *CourtHandler) UpdateJudge(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	judge, err := h.store.GetJudge(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	if err := c.BodyParser(judge); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if err := h.store.UpdateJudge(judge); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update judge"})
	}
	return c.JSON(judge)
}
