package workflow

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/database"
	"hospital-lab/app/lab"
	"hospital-lab/app/routes/patients"
)

// respondError maps core engine errors onto JSON responses.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *lab.ValidationError
	var nerr *lab.NotFoundError
	var perr *lab.PreconditionError
	var pierr *lab.PipelineError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Msg})
	case errors.As(err, &nerr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nerr.Error()})
	case errors.As(err, &perr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": perr.Msg})
	case errors.As(err, &pierr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  pierr.Error(),
			"kind":   pierr.Kind,
			"fields": pierr.Fields,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
}

// CreateSessionAPI starts a new workflow session at the registration stage.
func CreateSessionAPI(c *fiber.Ctx, engine *lab.Workflow) error {
	session := engine.Sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

// GetSessionAPI returns a session's current stage and context.
func GetSessionAPI(c *fiber.Ctx, engine *lab.Workflow) error {
	session, err := engine.Sessions.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch session")
	}
	return c.JSON(fiber.Map{"session": session})
}

// SetPatientAPI registers a new patient — or selects an existing one by id —
// and advances the session to the assignment stage.
func SetPatientAPI(c *fiber.Ctx, engine *lab.Workflow, db *sql.DB) error {
	session, err := engine.Sessions.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch session")
	}

	type SetPatientRequest struct {
		PatientID string `json:"patient_id"`
		patients.CreatePatientRequest
	}
	var req SetPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.PatientID != "" {
		// Selecting an existing family member instead of registering.
		patient, err := database.GetPatientByID(db, req.PatientID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patient"})
		}
		if patient == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		if err := engine.SetPatient(session, patient); err != nil {
			return respondError(c, err, "Failed to select patient")
		}
		return c.JSON(fiber.Map{"session": session})
	}

	patient, err := patients.ValidatePatientRequest(&req.CreatePatientRequest)
	if err != nil {
		return respondError(c, err, "Failed to register patient")
	}
	if err := database.CreatePatient(db, patient); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register patient"})
	}
	if err := engine.SetPatient(session, patient); err != nil {
		return respondError(c, err, "Failed to register patient")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

// AssignTestAPI assigns a lab test to the session's patient and advances the
// session to data entry.
func AssignTestAPI(c *fiber.Ctx, engine *lab.Workflow) error {
	session, err := engine.Sessions.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch session")
	}

	type AssignTestRequest struct {
		LabTestID string `json:"lab_test_id"`
	}
	var req AssignTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.LabTestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lab_test_id is required"})
	}

	test, err := engine.AssignTest(session, req.LabTestID)
	if err != nil {
		return respondError(c, err, "Failed to assign test")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session": session,
		"test":    test,
	})
}

// SaveResultsAPI submits the data-entry values for the session's pending
// test and advances the session to confirmation.
func SaveResultsAPI(c *fiber.Ctx, engine *lab.Workflow) error {
	session, err := engine.Sessions.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch session")
	}

	type SaveResultsRequest struct {
		Values map[string]string `json:"values"`
	}
	var req SaveResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	test, err := engine.SaveResults(session, req.Values)
	if err != nil {
		return respondError(c, err, "Failed to save results")
	}

	return c.JSON(fiber.Map{
		"message": "Test results saved successfully",
		"session": session,
		"test":    test,
	})
}

// NewPatientAPI clears the session and returns it to registration.
func NewPatientAPI(c *fiber.Ctx, engine *lab.Workflow) error {
	session, err := engine.Sessions.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch session")
	}
	if err := session.StartNewPatient(); err != nil {
		return respondError(c, err, "Failed to start new patient")
	}
	return c.JSON(fiber.Map{"session": session})
}

// AnotherTestAPI keeps the session's patient and returns to assignment.
func AnotherTestAPI(c *fiber.Ctx, engine *lab.Workflow) error {
	session, err := engine.Sessions.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch session")
	}
	if err := session.AddAnotherTest(); err != nil {
		return respondError(c, err, "Failed to add another test")
	}
	return c.JSON(fiber.Map{"session": session})
}
