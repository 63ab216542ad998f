package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// EmployeeHandler handles staff profile requests
type EmployeeHandler struct {
	store storage.Store
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(store storage.Store) *EmployeeHandler {
	return &EmployeeHandler{store: store}
}

// Create attaches an employee profile to an existing user account
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var employee models.Employee
	if err := c.BodyParser(&employee); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if employee.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"user_id": "this field is required",
		})
	}
	if !models.ValidDesignation(employee.Designation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"designation": "invalid designation",
		})
	}
	if _, err := h.store.GetUser(employee.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"user_id": "no such user",
		})
	}
	employee.IsActive = true

	created, err := h.store.CreateEmployee(&employee)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"user_id": "employee profile already exists for this user",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to create employee"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns all employee profiles
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.store.GetAllEmployees()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list employees"})
	}
	return c.JSON(employees)
}

// Get returns an employee profile by id
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	employee, err := h.store.GetEmployee(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	return c.JSON(employee)
}

// Update edits an employee profile. Separation is recorded by the leaving
// date plus the user's separated flag, never by deleting the row.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	employee, err := h.store.GetEmployee(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	if err := c.BodyParser(employee); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if !models.ValidDesignation(employee.Designation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"designation": "invalid designation",
		})
	}
	if err := h.store.UpdateEmployee(employee); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update employee"})
	}

	if employee.DateOfLeaving != nil {
		if user, uerr := h.store.GetUser(employee.UserID); uerr == nil && !user.IsSeparated {
			user.IsSeparated = true
			user.IsActive = false
			_ = h.store.UpdateUser(user)
		}
	}

	return c.JSON(employee)
}
