package models

import "time"

// Test is one assignment of a lab test to a patient.
// It is created in pending status at assignment time and flips to completed
// exactly once, when its results are persisted.
type Test struct {
	ID        string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PatientID string        `json:"patient_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	LabTestID string        `json:"lab_test_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status    TestStatus    `json:"status" gorm:"not null;default:'pending'" validate:"required"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
	Patient   *Patient      `json:"patient,omitempty" gorm:"foreignKey:PatientID;references:ID"`
	LabTest   *LabTest      `json:"lab_test,omitempty" gorm:"foreignKey:LabTestID;references:ID"`
	Results   []*TestResult `json:"results,omitempty" gorm:"foreignKey:TestID;references:ID"`
}

// TestResult is one captured field value belonging to a completed test.
// FieldID references the field definition by identity so later schema edits
// cannot reinterpret historical data; FieldName is denormalized for display.
type TestResult struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	TestID     string    `json:"test_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FieldID    string    `json:"field_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FieldName  string    `json:"field_name" gorm:"not null" validate:"required"`
	FieldValue string    `json:"field_value" gorm:"not null" validate:"required"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}
