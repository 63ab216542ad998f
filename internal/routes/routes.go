package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lexcase/lexcase-backend/internal/handlers"
	"github.com/lexcase/lexcase-backend/internal/middleware"
	"github.com/lexcase/lexcase-backend/internal/services"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, tokens *services.TokenService, sms *services.SMSService, echoCodes bool) {
	authService := services.NewAuthService(store, tokens)
	otpService := services.NewOTPService(store, sms)
	resetService := services.NewPasswordResetService(store)

	authHandler := handlers.NewAuthHandler(authService, otpService, resetService, tokens, echoCodes)
	userHandler := handlers.NewUserHandler(store)
	courtHandler := handlers.NewCourtHandler(store)
	customerHandler := handlers.NewCustomerHandler(store)
	employeeHandler := handlers.NewEmployeeHandler(store)
	caseHandler := handlers.NewCaseHandler(store)
	documentHandler := handlers.NewDocumentHandler(store)
	notificationHandler := handlers.NewNotificationHandler(store)

	api := app.Group("/api")

	// Public auth surface
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/otp/request", authHandler.OTPRequest)
	auth.Post("/otp/verify", authHandler.OTPVerify)
	auth.Post("/password-reset/request", authHandler.PasswordResetRequest)
	auth.Post("/password-reset/confirm", authHandler.PasswordResetConfirm)
	auth.Post("/token", authHandler.Token)
	auth.Post("/token/refresh", authHandler.TokenRefresh)

	// Everything below requires a valid access token
	authed := api.Group("", middleware.RequireAuth(tokens))

	users := authed.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)

	staff := authed.Group("", middleware.RequireStaff())

	courts := authed.Group("/courts")
	courts.Get("/", courtHandler.ListCourts)
	courts.Get("/:id", courtHandler.GetCourt)
	staff.Post("/courts", courtHandler.CreateCourt)
	staff.Put("/courts/:id", courtHandler.UpdateCourt)
	staff.Delete("/courts/:id", courtHandler.DeleteCourt)

	judges := authed.Group("/judges")
	judges.Get("/", courtHandler.ListJudges)
	judges.Get("/:id", courtHandler.GetJudge)
	staff.Post("/judges", courtHandler.CreateJudge)
	staff.Put("/judges/:id", courtHandler.UpdateJudge)

	staff.Post("/customers", customerHandler.Create)
	staff.Get("/customers", customerHandler.List)
	staff.Get("/customers/:id", customerHandler.Get)
	staff.Put("/customers/:id", customerHandler.Update)
	staff.Get("/customers/:id/cases", customerHandler.Cases)

	staff.Post("/employees", employeeHandler.Create)
	staff.Get("/employees", employeeHandler.List)
	staff.Get("/employees/:id", employeeHandler.Get)
	staff.Put("/employees/:id", employeeHandler.Update)

	staff.Post("/cases", caseHandler.Create)
	staff.Get("/cases", caseHandler.List)
	staff.Get("/cases/:id", caseHandler.Get)
	staff.Put("/cases/:id", caseHandler.Update)
	staff.Post("/cases/:id/updates", caseHandler.AddUpdate)
	staff.Get("/cases/:id/updates", caseHandler.Updates)
	staff.Post("/cases/:id/hearings", caseHandler.ScheduleHearing)
	staff.Get("/cases/:id/hearings", caseHandler.Hearings)
	staff.Put("/hearings/:id", caseHandler.UpdateHearing)

	documents := authed.Group("/documents")
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Delete("/:id", documentHandler.Delete)

	notifications := authed.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	staff.Post("/notifications", notificationHandler.Create)
}
