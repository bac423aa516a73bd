package patients

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/lab"
)

// SetupPatientsRoutes sets up the patient registration and lookup routes.
func SetupPatientsRoutes(app *fiber.App, db *sql.DB, notifier lab.Notifier) {
	api := app.Group("/api/patients")
	api.Get("/", func(c *fiber.Ctx) error { return GetPatientsAPI(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreatePatientAPI(c, db, notifier) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetPatientByIDAPI(c, db) })
}
