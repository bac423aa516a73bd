package patients

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"hospital-lab/app/database"
	"hospital-lab/app/lab"
	"hospital-lab/app/models"
)

// CreatePatientRequest carries a patient registration form.
type CreatePatientRequest struct {
	Name     string `json:"name"`
	UniqueID string `json:"unique_id"`
	Age      *int   `json:"age"`
	Sex      string `json:"sex"`
	Rank     string `json:"rank"`
	Ward     string `json:"ward"`
}

// ValidatePatientRequest checks a registration form and builds the patient
// record. Every attribute is required; sex, rank and ward must be among the
// configured values.
func ValidatePatientRequest(req *CreatePatientRequest) (*models.Patient, error) {
	name := strings.TrimSpace(req.Name)
	uniqueID := strings.TrimSpace(req.UniqueID)
	switch {
	case name == "":
		return nil, lab.NewValidationError("patient name is required")
	case uniqueID == "":
		return nil, lab.NewValidationError("unique id is required")
	case req.Age == nil || *req.Age < 0:
		return nil, lab.NewValidationError("age is required and must not be negative")
	case req.Sex != string(models.SexMale) && req.Sex != string(models.SexFemale):
		return nil, lab.NewValidationError("sex must be Male or Female")
	case !models.ValidRank(req.Rank):
		return nil, lab.NewValidationError("unknown rank %q", req.Rank)
	case !models.ValidWard(req.Ward):
		return nil, lab.NewValidationError("unknown ward %q", req.Ward)
	}

	return &models.Patient{
		Name:     name,
		UniqueID: uniqueID,
		Age:      *req.Age,
		Sex:      models.Sex(req.Sex),
		Rank:     models.Rank(req.Rank),
		Ward:     models.Ward(req.Ward),
	}, nil
}

// CreatePatientAPI registers a new patient. Registering another patient under
// an already used unique id creates a new record; family members share the
// number and are never merged.
func CreatePatientAPI(c *fiber.Ctx, db *sql.DB, notifier lab.Notifier) error {
	var req CreatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	patient, err := ValidatePatientRequest(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.CreatePatient(db, patient); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create patient"})
	}

	if notifier != nil {
		notifier.Notify("Patient Registered", "Successfully registered "+patient.Name)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Patient registered successfully",
		"patient": patient,
	})
}

// GetPatientsAPI returns patients. With ?unique_id= it returns every patient
// registered under that family number so the operator can disambiguate;
// otherwise it returns all patients with their assigned tests.
func GetPatientsAPI(c *fiber.Ctx, db *sql.DB) error {
	uniqueID := c.Query("unique_id")
	if uniqueID != "" {
		patients, err := database.GetPatientsByUniqueID(db, uniqueID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patients"})
		}
		return c.JSON(fiber.Map{
			"patients": patients,
			"count":    len(patients),
		})
	}

	patients, err := database.GetAllPatients(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patients"})
	}
	for _, patient := range patients {
		tests, err := database.GetTestsByPatientID(db, patient.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patient tests"})
		}
		patient.Tests = tests
	}

	return c.JSON(fiber.Map{
		"patients": patients,
		"count":    len(patients),
	})
}

// GetPatientByIDAPI returns a single patient with their assigned tests.
func GetPatientByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	patientID := c.Params("id")

	patient, err := database.GetPatientByID(db, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patient"})
	}
	if patient == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
	}

	tests, err := database.GetTestsByPatientID(db, patient.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch patient tests"})
	}
	patient.Tests = tests

	return c.JSON(fiber.Map{"patient": patient})
}
