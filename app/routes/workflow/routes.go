package workflow

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/lab"
)

// SetupWorkflowRoutes sets up the clerk workflow session routes.
func SetupWorkflowRoutes(app *fiber.App, engine *lab.Workflow, db *sql.DB) {
	api := app.Group("/api/workflow/sessions")
	api.Post("/", func(c *fiber.Ctx) error { return CreateSessionAPI(c, engine) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetSessionAPI(c, engine) })
	api.Post("/:id/patient", func(c *fiber.Ctx) error { return SetPatientAPI(c, engine, db) })
	api.Post("/:id/assign", func(c *fiber.Ctx) error { return AssignTestAPI(c, engine) })
	api.Post("/:id/results", func(c *fiber.Ctx) error { return SaveResultsAPI(c, engine) })
	api.Post("/:id/new-patient", func(c *fiber.Ctx) error { return NewPatientAPI(c, engine) })
	api.Post("/:id/another-test", func(c *fiber.Ctx) error { return AnotherTestAPI(c, engine) })
}
