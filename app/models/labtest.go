package models

import "time"

// LabTest is an operator-configured test type with its own field schema.
type LabTest struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name        string          `json:"name" gorm:"not null" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" gorm:"not null;default:'Uncategorized'"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	Fields      []*LabTestField `json:"fields,omitempty" gorm:"foreignKey:LabTestID;references:ID"`
}

// LabTestField is one typed entry in a lab test's data-entry form.
// FieldOptions is populated only for dropdown fields. FieldOrder is assigned
// as count+1 on append and never renumbered on delete, so gaps are normal;
// ordering, not contiguity, is what matters.
type LabTestField struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	LabTestID    string    `json:"lab_test_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FieldName    string    `json:"field_name" gorm:"not null" validate:"required"`
	FieldType    FieldType `json:"field_type" gorm:"not null" validate:"required"`
	FieldOptions []string  `json:"field_options,omitempty" gorm:"type:text[]"`
	IsRequired   bool      `json:"is_required" gorm:"default:false"`
	FieldOrder   int       `json:"field_order" gorm:"not null"`
	Unit         *string   `json:"unit,omitempty"`
}
