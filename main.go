package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/lexcase/lexcase-backend/database"
	"github.com/lexcase/lexcase-backend/internal/handlers"
	"github.com/lexcase/lexcase-backend/internal/jobs"
	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/routes"
	"github.com/lexcase/lexcase-backend/internal/services"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	// Initialize storage
	var store storage.Store

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.OTPLogin{},
			&models.PasswordResetCode{},
			&models.Country{},
			&models.State{},
			&models.City{},
			&models.Court{},
			&models.Judge{},
			&models.Customer{},
			&models.Employee{},
			&models.CaseCategory{},
			&models.CaseStatus{},
			&models.CasePriority{},
			&models.Case{},
			&models.CaseUpdate{},
			&models.Hearing{},
			&models.UploadedDocument{},
			&models.Notification{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Token issuer needs a signing secret before anything else can run
	tokenService, err := services.NewTokenServiceFromEnv()
	if err != nil {
		log.Fatal("Failed to initialize token service:", err)
	}

	// SMS delivery is optional; without it OTP codes are echoed in responses
	var smsService *services.SMSService
	smsService, err = services.NewSMSService()
	if err != nil {
		log.Println("⚠️  Twilio credentials not found - OTP codes will be returned in responses")
		smsService = nil
	} else {
		services.SetSMSService(smsService)
		log.Println("✅ Twilio SMS service initialized")
	}
	echoCodes := smsService == nil || os.Getenv("ECHO_CODES") == "true"

	// Start the credential housekeeping sweep
	housekeeping := jobs.NewHousekeepingJob(store)
	housekeeping.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "LexCase Backend v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint with database status
	var pingDB func() error
	if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
		pingDB = func() error {
			sqlDB, err := database.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		}
	}
	healthHandler := handlers.NewHealthHandler(version, pingDB, smsService != nil)
	app.Get("/health", healthHandler.Check)

	// Setup API routes
	routes.SetupRoutes(app, store, tokenService, smsService, echoCodes)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		housekeeping.Stop()
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 LexCase Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("📱 SMS delivery: %s", getSMSStatus(smsService))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getSMSStatus(sms *services.SMSService) string {
	if sms == nil {
		return "Not configured (codes echoed in responses)"
	}
	return "Configured"
}
