package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// CustomerHandler handles customer profile requests
type CustomerHandler struct {
	store storage.Store
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(store storage.Store) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// Create attaches a customer profile to an existing user account
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if customer.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"user_id": "this field is required",
		})
	}
	if _, err := h.store.GetUser(customer.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"user_id": "no such user",
		})
	}
	customer.IsActive = true

	created, err := h.store.CreateCustomer(&customer)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"user_id": "customer profile already exists for this user",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to create customer"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns all customer profiles
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.store.GetAllCustomers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list customers"})
	}
	return c.JSON(customers)
}

// Get returns a customer profile by id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	customer, err := h.store.GetCustomer(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	return c.JSON(customer)
}

// Update edits a customer profile
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	customer, err := h.store.GetCustomer(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	if err := c.BodyParser(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if err := h.store.UpdateCustomer(customer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to update customer"})
	}
	return c.JSON(customer)
}

// Cases lists the cases attached to a customer
func (h *CustomerHandler) Cases(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	if _, err := h.store.GetCustomer(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
	}
	cases, err := h.store.GetCasesByCustomer(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list cases"})
	}
	return c.JSON(cases)
}
