package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/middleware"
	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	store storage.Store
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store storage.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// Create records a notification for a user (staff only)
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var n models.Notification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if n.UserID == 0 || n.Title == "" || n.NotificationType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "user_id, notification_type, and title are required",
		})
	}
	if _, err := h.store.GetUser(n.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"user_id": "no such user"})
	}

	created, err := h.store.CreateNotification(&n)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to create notification"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.store.GetNotificationsByUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to list notifications"})
	}
	return c.JSON(notifications)
}

// MarkRead flips a notification's read flag for the caller
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid id"})
	}
	if err := h.store.MarkNotificationRead(id, middleware.UserID(c)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "failed to mark notification read"})
	}
	return c.JSON(fiber.Map{"detail": "marked as read"})
}
