package labtests

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/lab"
)

// CreateLabTestAPI creates a new lab test type.
func CreateLabTestAPI(c *fiber.Ctx, registry *lab.Registry) error {
	type CreateLabTestRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	var req CreateLabTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	test, err := registry.CreateTest(req.Name, req.Description, req.Category)
	if err != nil {
		var verr *lab.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lab test"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Lab test created successfully",
		"lab_test": test,
	})
}

// GetLabTestsAPI returns all lab test types sorted by name.
func GetLabTestsAPI(c *fiber.Ctx, registry *lab.Registry) error {
	tests, err := registry.Tests()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch lab tests"})
	}

	return c.JSON(fiber.Map{
		"lab_tests": tests,
		"count":     len(tests),
	})
}

// AddFieldAPI appends a field to a lab test's schema.
func AddFieldAPI(c *fiber.Ctx, registry *lab.Registry) error {
	testID := c.Params("id")

	type AddFieldRequest struct {
		FieldName    string `json:"field_name"`
		FieldType    string `json:"field_type"`
		FieldOptions string `json:"field_options"`
		IsRequired   bool   `json:"is_required"`
		Unit         string `json:"unit"`
	}

	var req AddFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	field, err := registry.AddField(testID, req.FieldName, req.FieldType, req.FieldOptions, req.IsRequired, req.Unit)
	if err != nil {
		var verr *lab.ValidationError
		var nerr *lab.NotFoundError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
		case errors.As(err, &nerr):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nerr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add field"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Field added successfully",
		"field":   field,
	})
}

// GetFieldsAPI returns a lab test's fields in display order.
func GetFieldsAPI(c *fiber.Ctx, registry *lab.Registry) error {
	testID := c.Params("id")

	fields, err := registry.Fields(testID)
	if err != nil {
		var nerr *lab.NotFoundError
		if errors.As(err, &nerr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nerr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fields"})
	}

	return c.JSON(fiber.Map{
		"fields": fields,
		"count":  len(fields),
	})
}

// DeleteFieldAPI removes a field from its test's schema.
func DeleteFieldAPI(c *fiber.Ctx, registry *lab.Registry) error {
	fieldID := c.Params("id")

	if err := registry.RemoveField(fieldID); err != nil {
		var nerr *lab.NotFoundError
		if errors.As(err, &nerr) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nerr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete field"})
	}

	return c.JSON(fiber.Map{
		"message": "Field deleted successfully",
	})
}
