package lab

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"hospital-lab/app/models"
)

// memStore is an in-memory stand-in for the SQL store used across the
// package tests. It implements SchemaStore, TestStore and ReportStore with
// the same contracts: (nil, nil) on missing records, creation-order reads,
// and an atomic pending-to-completed flip.
type memStore struct {
	labTests []*models.LabTest
	fields   []*models.LabTestField
	tests    []*models.Test
	results  []*models.TestResult

	// patients lets the report reads resolve ranks.
	patients map[string]*models.Patient

	// failCompletion forces CompleteTestWithResults to fail after the
	// status check, for atomicity tests.
	failCompletion bool
}

func newMemStore() *memStore {
	return &memStore{patients: make(map[string]*models.Patient)}
}

func (m *memStore) addPatient(p *models.Patient) *models.Patient {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.patients[p.ID] = p
	return p
}

func (m *memStore) InsertLabTest(t *models.LabTest) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	m.labTests = append(m.labTests, t)
	return nil
}

func (m *memStore) ListLabTests() ([]*models.LabTest, error) {
	return m.labTests, nil
}

func (m *memStore) GetLabTest(id string) (*models.LabTest, error) {
	for _, t := range m.labTests {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertField(f *models.LabTestField) error {
	f.ID = uuid.NewString()
	m.fields = append(m.fields, f)
	return nil
}

func (m *memStore) ListFields(labTestID string) ([]*models.LabTestField, error) {
	var out []*models.LabTestField
	for _, f := range m.fields {
		if f.LabTestID == labTestID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) DeleteField(fieldID string) (bool, error) {
	for i, f := range m.fields {
		if f.ID == fieldID {
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertTest(t *models.Test) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	m.tests = append(m.tests, t)
	return nil
}

func (m *memStore) GetTest(id string) (*models.Test, error) {
	for _, t := range m.tests {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListTestsByPatient(patientID string) ([]*models.Test, error) {
	var out []*models.Test
	for _, t := range m.tests {
		if t.PatientID == patientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) CompleteTestWithResults(testID string, rows []*models.TestResult) error {
	var test *models.Test
	for _, t := range m.tests {
		if t.ID == testID {
			test = t
			break
		}
	}
	if test == nil || test.Status != models.TestPending {
		return &PreconditionError{Msg: "test is not pending"}
	}
	if m.failCompletion {
		return errors.New("storage unavailable")
	}
	test.Status = models.TestCompleted
	for _, row := range rows {
		row.ID = uuid.NewString()
		row.CreatedAt = time.Now()
		m.results = append(m.results, row)
	}
	return nil
}

func (m *memStore) rankOf(patientID string) models.Rank {
	if p, ok := m.patients[patientID]; ok {
		return p.Rank
	}
	return ""
}

func (m *memStore) labTestOf(t *models.Test) *models.LabTest {
	lt, _ := m.GetLabTest(t.LabTestID)
	return lt
}

func (m *memStore) CompletedTests() ([]CompletedTest, error) {
	var out []CompletedTest
	for _, t := range m.tests {
		if t.Status != models.TestCompleted {
			continue
		}
		ct := CompletedTest{Rank: m.rankOf(t.PatientID)}
		if lt := m.labTestOf(t); lt != nil {
			ct.TestName = lt.Name
		}
		for _, r := range m.results {
			if r.TestID == t.ID {
				ct.Results = append(ct.Results, r.FieldValue)
			}
		}
		out = append(out, ct)
	}
	return out, nil
}

func (m *memStore) CompletedTestsBetween(start, end time.Time) ([]CategoryInput, error) {
	var out []CategoryInput
	for _, t := range m.tests {
		if t.Status != models.TestCompleted {
			continue
		}
		if t.CreatedAt.Before(start) || !t.CreatedAt.Before(end) {
			continue
		}
		input := CategoryInput{Rank: m.rankOf(t.PatientID)}
		if lt := m.labTestOf(t); lt != nil {
			input.Category = lt.Category
		}
		out = append(out, input)
	}
	return out, nil
}

func (m *memStore) TestsByRank(from, to *time.Time) ([]TestNameRank, error) {
	var out []TestNameRank
	for _, t := range m.tests {
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && t.CreatedAt.After(*to) {
			continue
		}
		row := TestNameRank{Rank: m.rankOf(t.PatientID)}
		if lt := m.labTestOf(t); lt != nil {
			row.TestName = lt.Name
		}
		out = append(out, row)
	}
	return out, nil
}

var (
	_ SchemaStore = (*memStore)(nil)
	_ TestStore   = (*memStore)(nil)
	_ ReportStore = (*memStore)(nil)
)

// memNotifier records workflow events for assertions.
type memNotifier struct {
	events []string
}

func (n *memNotifier) Notify(event, detail string) {
	n.events = append(n.events, event)
}
