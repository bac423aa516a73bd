package reports

import (
	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/lab"
)

// SetupReportsRoutes sets up the aggregated report routes.
func SetupReportsRoutes(app *fiber.App, reporter *lab.Reporter) {
	api := app.Group("/api/reports")
	api.Get("/summary", func(c *fiber.Ctx) error { return GetSummaryAPI(c, reporter) })
	api.Get("/by-test", func(c *fiber.Ctx) error { return GetByTestAPI(c, reporter) })
	api.Get("/by-category", func(c *fiber.Ctx) error { return GetByCategoryAPI(c, reporter) })
}
