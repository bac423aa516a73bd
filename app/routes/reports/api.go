package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/lab"
)

const dateLayout = "2006-01-02"

// GetSummaryAPI returns the lab summary pivot: one row per (test, result)
// pair among completed tests, with per-rank counts and a grand total.
func GetSummaryAPI(c *fiber.Ctx, reporter *lab.Reporter) error {
	rows, totals, err := reporter.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary report"})
	}

	return c.JSON(fiber.Map{
		"rows":   rows,
		"totals": totals,
		"count":  len(rows),
	})
}

// GetByTestAPI returns assigned-test counts per test name and rank, with
// optional ?from= and ?to= date bounds.
func GetByTestAPI(c *fiber.Ctx, reporter *lab.Reporter) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be a date (YYYY-MM-DD)"})
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be a date (YYYY-MM-DD)"})
		}
		// Inclusive through the end of the day.
		end := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	rows, totals, err := reporter.ByTest(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build test report"})
	}

	return c.JSON(fiber.Map{
		"rows":   rows,
		"totals": totals,
		"count":  len(rows),
	})
}

// GetByCategoryAPI returns completed-test counts per category for an
// inclusive date range. With ?format=csv the pivot is returned as a CSV
// download instead of JSON.
func GetByCategoryAPI(c *fiber.Ctx, reporter *lab.Reporter) error {
	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" || endRaw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date and end_date are required"})
	}

	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be a date (YYYY-MM-DD)"})
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be a date (YYYY-MM-DD)"})
	}

	rows, totals, err := reporter.ByCategory(start, end)
	if err != nil {
		var verr *lab.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build category report"})
	}

	if c.Query("format") == "csv" {
		filename := fmt.Sprintf("lab_report_%s_to_%s.csv", startRaw, endRaw)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendString(lab.CategoryCSV(rows))
	}

	return c.JSON(fiber.Map{
		"rows":   rows,
		"totals": totals,
		"count":  len(rows),
	})
}
