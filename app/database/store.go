package database

import (
	"database/sql"
	"time"

	"hospital-lab/app/lab"
	"hospital-lab/app/models"
)

// Store adapts the plain-SQL query functions to the core engine's store
// interfaces.
type Store struct {
	DB *sql.DB
}

// NewStore wraps a database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

var (
	_ lab.SchemaStore        = (*Store)(nil)
	_ lab.TestStore          = (*Store)(nil)
	_ lab.ReportStore        = (*Store)(nil)
	_ lab.CategoryAggregator = (*Store)(nil)
)

func (s *Store) InsertLabTest(t *models.LabTest) error {
	return CreateLabTest(s.DB, t)
}

func (s *Store) ListLabTests() ([]*models.LabTest, error) {
	return GetLabTests(s.DB)
}

func (s *Store) GetLabTest(id string) (*models.LabTest, error) {
	return GetLabTestByID(s.DB, id)
}

func (s *Store) InsertField(f *models.LabTestField) error {
	return CreateLabTestField(s.DB, f)
}

func (s *Store) ListFields(labTestID string) ([]*models.LabTestField, error) {
	return GetFieldsByLabTestID(s.DB, labTestID)
}

func (s *Store) DeleteField(fieldID string) (bool, error) {
	return DeleteLabTestField(s.DB, fieldID)
}

func (s *Store) InsertTest(t *models.Test) error {
	return CreateTest(s.DB, t)
}

func (s *Store) GetTest(id string) (*models.Test, error) {
	return GetTestByID(s.DB, id)
}

func (s *Store) ListTestsByPatient(patientID string) ([]*models.Test, error) {
	return GetTestsByPatientID(s.DB, patientID)
}

func (s *Store) CompleteTestWithResults(testID string, rows []*models.TestResult) error {
	return CompleteTestWithResults(s.DB, testID, rows)
}

func (s *Store) CompletedTests() ([]lab.CompletedTest, error) {
	return GetCompletedTestSummary(s.DB)
}

func (s *Store) CompletedTestsBetween(start, end time.Time) ([]lab.CategoryInput, error) {
	return GetCompletedTestsBetween(s.DB, start, end)
}

func (s *Store) TestsByRank(from, to *time.Time) ([]lab.TestNameRank, error) {
	return GetTestsByRank(s.DB, from, to)
}

func (s *Store) CategoryCounts(start, end time.Time) ([]*lab.CategoryRow, error) {
	return GetCategoryCounts(s.DB, start, end)
}
