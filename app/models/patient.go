package models

import "time"

// Patient represents a registered hospital patient.
// UniqueID is the family book number; several patients may legitimately share it,
// so it carries no unique constraint and lookups return every match.
type Patient struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	UniqueID  string    `json:"unique_id" gorm:"not null;index" validate:"required"`
	Age       int       `json:"age" gorm:"not null" validate:"gte=0"`
	Sex       Sex       `json:"sex" gorm:"not null" validate:"required"`
	Rank      Rank      `json:"rank" gorm:"not null;index" validate:"required"`
	Ward      Ward      `json:"ward" gorm:"not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Tests     []*Test   `json:"tests,omitempty" gorm:"foreignKey:PatientID;references:ID"`
}
