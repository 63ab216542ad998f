package handlers

import "github.com/gofiber/fiber/v2"

// HealthHandler handles health check requests
type HealthHandler struct {
	Version string
	// PingDB reports database reachability; nil means no database is in play.
	PingDB func() error
	// SMSConfigured reports whether an SMS collaborator is wired.
	SMSConfigured bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, pingDB func() error, smsConfigured bool) *HealthHandler {
	return &HealthHandler{
		Version:       version,
		PingDB:        pingDB,
		SMSConfigured: smsConfigured,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK

	if h.PingDB != nil && h.PingDB() != nil {
		status = "unhealthy"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"version": h.Version,
		"services": fiber.Map{
			"database": status == "healthy",
			"sms":      h.SMSConfigured,
		},
	})
}
