package labtests

import (
	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/lab"
)

// SetupLabTestsRoutes sets up the lab test schema management routes.
func SetupLabTestsRoutes(app *fiber.App, registry *lab.Registry) {
	api := app.Group("/api/lab-tests")
	api.Get("/", func(c *fiber.Ctx) error { return GetLabTestsAPI(c, registry) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateLabTestAPI(c, registry) })
	api.Get("/:id/fields", func(c *fiber.Ctx) error { return GetFieldsAPI(c, registry) })
	api.Post("/:id/fields", func(c *fiber.Ctx) error { return AddFieldAPI(c, registry) })
	api.Delete("/fields/:id", func(c *fiber.Ctx) error { return DeleteFieldAPI(c, registry) })
}
