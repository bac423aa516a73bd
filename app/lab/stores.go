package lab

import (
	"time"

	"hospital-lab/app/models"
)

// SchemaStore is the persistence contract for lab test definitions and their
// field schemas. Get methods return (nil, nil) when no record matches.
type SchemaStore interface {
	InsertLabTest(t *models.LabTest) error
	ListLabTests() ([]*models.LabTest, error)
	GetLabTest(id string) (*models.LabTest, error)
	InsertField(f *models.LabTestField) error
	ListFields(labTestID string) ([]*models.LabTestField, error)
	DeleteField(fieldID string) (bool, error)
}

// TestStore is the persistence contract for assigned tests and their results.
//
// CompleteTestWithResults must atomically flip the test from pending to
// completed and insert the result batch; a failure partway must leave the
// test pending with no rows persisted. Implementations signal a test that is
// not pending (already completed, or racing submission lost) with a
// PreconditionError.
type TestStore interface {
	InsertTest(t *models.Test) error
	GetTest(id string) (*models.Test, error)
	ListTestsByPatient(patientID string) ([]*models.Test, error)
	CompleteTestWithResults(testID string, rows []*models.TestResult) error
}

// CompletedTest is the raw input to the summary pivot: one completed test
// with its patient's rank and every captured result value, in capture order.
type CompletedTest struct {
	TestName string
	Rank     models.Rank
	Results  []string
}

// CategoryInput is the raw input to the by-category pivot.
type CategoryInput struct {
	Category string
	Rank     models.Rank
}

// TestNameRank is the raw input to the by-test pivot.
type TestNameRank struct {
	TestName string
	Rank     models.Rank
}

// ReportStore is the read contract the report builder aggregates over.
// Row order from these reads determines pivot row discovery order, so
// implementations must return rows in a stable order (creation time).
type ReportStore interface {
	CompletedTests() ([]CompletedTest, error)
	// CompletedTestsBetween returns completed tests created in [start, end).
	CompletedTestsBetween(start, end time.Time) ([]CategoryInput, error)
	// TestsByRank returns every assigned test, optionally bounded by
	// creation time on either side.
	TestsByRank(from, to *time.Time) ([]TestNameRank, error)
}

// CategoryAggregator is an optional pushdown a ReportStore may implement:
// the store pre-pivots the by-category counts itself. The report builder
// produces identical output whether or not the pushdown is available.
type CategoryAggregator interface {
	CategoryCounts(start, end time.Time) ([]*CategoryRow, error)
}

// Notifier receives fire-and-forget, human-readable workflow events for the
// surrounding interface to display. Events carry no control-flow meaning.
type Notifier interface {
	Notify(event, detail string)
}
