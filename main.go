package main

import (
	"log"

	"hospital-lab/app/config"
	"hospital-lab/app/database"
	"hospital-lab/app/lab"
	"hospital-lab/app/routes/labtests"
	"hospital-lab/app/routes/patients"
	"hospital-lab/app/routes/reports"
	"hospital-lab/app/routes/workflow"
	"hospital-lab/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// apiErrorHandler renders unhandled errors as JSON.
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := config.GetDB()
	store := database.NewStore(db)
	notifier := &services.LogNotifier{}

	// Core lab engine
	registry := lab.NewRegistry(store)
	pipeline := lab.NewPipeline(store, store)
	reporter := lab.NewReporter(store)
	sessions := lab.NewSessionManager()
	engine := lab.NewWorkflow(sessions, registry, pipeline, store, notifier)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup lab test catalog routes
	labtests.SetupLabTestsRoutes(app, registry)

	// Setup patients routes
	patients.SetupPatientsRoutes(app, db, notifier)

	// Setup workflow session routes
	workflow.SetupWorkflowRoutes(app, engine, db)

	// Setup reports routes
	reports.SetupReportsRoutes(app, reporter)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
