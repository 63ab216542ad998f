package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/middleware"
	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// UserHandler handles user profile requests
type UserHandler struct {
	store storage.Store
}

// NewUserHandler creates a new user handler
func NewUserHandler(store storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

// List returns all users for staff, the caller's own record otherwise
func (h *UserHandler) List(c *fiber.Ctx) error {
	if !middleware.IsStaff(c) {
		user, err := h.store.GetUser(middleware.UserID(c))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "not found",
			})
		}
		return c.JSON([]models.PublicUser{user.Public()})
	}

	users, err := h.store.GetAllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to list users",
		})
	}

	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(out)
}

// Get returns a single user; non-staff may only fetch themselves
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid id",
		})
	}

	if !middleware.IsStaff(c) && id != middleware.UserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "not found",
		})
	}

	user, err := h.store.GetUser(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "not found",
		})
	}
	return c.JSON(user.Public())
}

type userUpdateBody struct {
	Mobile    *string `json:"mobile"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
}

// Update edits profile fields; the active flag is staff-only. Accounts are
// never hard-deleted, deactivation is the flag flip here.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid id",
		})
	}

	if !middleware.IsStaff(c) && id != middleware.UserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "not found",
		})
	}

	user, err := h.store.GetUser(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to load user",
		})
	}

	var body userUpdateBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}

	if body.Mobile != nil {
		user.Mobile = *body.Mobile
	}
	if body.FirstName != nil {
		user.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		user.LastName = *body.LastName
	}
	if body.IsActive != nil && middleware.IsStaff(c) {
		user.IsActive = *body.IsActive
	}

	if err := h.store.UpdateUser(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to update user",
		})
	}
	return c.JSON(user.Public())
}

// Me returns the caller's own record with the derived storage figure
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.store.GetUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "not found",
		})
	}
	return c.JSON(fiber.Map{
		"user":              user.Public(),
		"storage_used":      user.StorageUsed,
		"storage_available": user.StorageAvailable(),
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
