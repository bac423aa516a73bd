package models

// Rank defines the patient entitlement categories used for report tallies.
type Rank string

const (
	RankArmy       Rank = "Army"
	RankArmyFamily Rank = "Army Family"
	RankCivil      Rank = "Civil"
	RankPension    Rank = "Pension"
)

// Ranks lists every rank in report column order.
var Ranks = []Rank{RankArmy, RankArmyFamily, RankCivil, RankPension}

// Sex defines the possible sex values for a patient.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Ward defines the hospital wards a patient can be admitted from.
type Ward string

const (
	WardOPD       Ward = "OPD"
	WardMedical   Ward = "Medical"
	WardGyn       Ward = "Gyn"
	WardSurgical  Ward = "Surgical"
	WardPediatric Ward = "Pediatric"
	WardEmergency Ward = "Emergency"
)

// Wards lists the selectable wards.
var Wards = []Ward{WardOPD, WardMedical, WardGyn, WardSurgical, WardPediatric, WardEmergency}

// FieldType defines the input types a lab test field can take.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldFloat    FieldType = "float"
	FieldDropdown FieldType = "dropdown"
	FieldTextarea FieldType = "textarea"
)

// FieldTypes lists the configurable field types.
var FieldTypes = []FieldType{FieldText, FieldFloat, FieldDropdown, FieldTextarea}

// TestStatus defines the lifecycle of an assigned test.
type TestStatus string

const (
	TestPending   TestStatus = "pending"
	TestCompleted TestStatus = "completed"
)

// DefaultCategory is applied when a lab test is created without a category.
const DefaultCategory = "Uncategorized"

// Categories lists the lab test categories offered to operators.
var Categories = []string{
	"Chemistry",
	"Hematology",
	"Microbiology",
	"Serology",
	"Radiology",
	DefaultCategory,
}

// ValidRank reports whether r is one of the configured ranks.
func ValidRank(r string) bool {
	for _, rank := range Ranks {
		if string(rank) == r {
			return true
		}
	}
	return false
}

// ValidWard reports whether w is one of the configured wards.
func ValidWard(w string) bool {
	for _, ward := range Wards {
		if string(ward) == w {
			return true
		}
	}
	return false
}

// ValidFieldType reports whether t is a configurable field type.
func ValidFieldType(t string) bool {
	for _, ft := range FieldTypes {
		if string(ft) == t {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is one of the configured categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}
