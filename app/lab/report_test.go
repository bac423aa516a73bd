package lab

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-lab/app/models"
)

// completeTest seeds one completed test for patient rank with the given
// result values.
func completeTest(t *testing.T, store *memStore, labTest *models.LabTest, rank models.Rank, values []string) {
	t.Helper()
	patient := store.addPatient(&models.Patient{Name: "Patient", Rank: rank})
	test := &models.Test{PatientID: patient.ID, LabTestID: labTest.ID, Status: models.TestPending}
	require.NoError(t, store.InsertTest(test))

	var rows []*models.TestResult
	for _, v := range values {
		rows = append(rows, &models.TestResult{TestID: test.ID, FieldName: "Result", FieldValue: v})
	}
	if len(rows) == 0 {
		// Flip the status directly; the pipeline would refuse an empty batch
		// but historical data can still hold such tests.
		test.Status = models.TestCompleted
		return
	}
	require.NoError(t, store.CompleteTestWithResults(test.ID, rows))
}

func TestSummaryPivot(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	widal, err := registry.CreateTest("Widal", "", "Serology")
	require.NoError(t, err)
	bloodCount, err := registry.CreateTest("Blood Count", "", "Hematology")
	require.NoError(t, err)

	completeTest(t, store, widal, models.RankArmy, []string{"Positive"})
	completeTest(t, store, widal, models.RankCivil, []string{"Positive"})
	completeTest(t, store, widal, models.RankArmy, []string{"Negative"})
	completeTest(t, store, bloodCount, models.RankPension, []string{"13.5", "Negative"})

	rows, totals, err := NewReporter(store).Summary()
	require.NoError(t, err)

	// Rows appear in discovery order, one per (test, result) pair.
	require.Len(t, rows, 4)
	assert.Equal(t, "Widal", rows[0].TestName)
	assert.Equal(t, "Positive", rows[0].Result)
	assert.Equal(t, 1, rows[0].Army)
	assert.Equal(t, 1, rows[0].Civil)
	assert.Equal(t, 2, rows[0].Total)

	assert.Equal(t, "Negative", rows[1].Result)
	assert.Equal(t, 1, rows[1].Army)

	// The multi-field test contributes one row per captured value.
	assert.Equal(t, "Blood Count", rows[2].TestName)
	assert.Equal(t, "13.5", rows[2].Result)
	assert.Equal(t, "Blood Count", rows[3].TestName)
	assert.Equal(t, "Negative", rows[3].Result)

	// Grand total equals the sum of row totals.
	sum := 0
	for _, row := range rows {
		sum += row.Total
	}
	assert.Equal(t, sum, totals.Total)
	assert.Equal(t, 2, totals.Army)
	assert.Equal(t, 1, totals.Civil)
	assert.Equal(t, 2, totals.Pension)
}

func TestSummaryBlankRowForEmptyResults(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	xray, err := registry.CreateTest("Chest X-Ray", "", "Radiology")
	require.NoError(t, err)

	completeTest(t, store, xray, models.RankArmyFamily, nil)

	rows, totals, err := NewReporter(store).Summary()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chest X-Ray", rows[0].TestName)
	assert.Equal(t, "-", rows[0].Result)
	assert.Equal(t, 1, rows[0].ArmyFamily)
	assert.Equal(t, 1, totals.Total)
}

func TestSummaryIgnoresPendingTests(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	widal, err := registry.CreateTest("Widal", "", "Serology")
	require.NoError(t, err)

	patient := store.addPatient(&models.Patient{Name: "Patient", Rank: models.RankArmy})
	pending := &models.Test{PatientID: patient.ID, LabTestID: widal.ID, Status: models.TestPending}
	require.NoError(t, store.InsertTest(pending))

	rows, totals, err := NewReporter(store).Summary()
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, totals.Total)
}

func TestByTestPivotCountsAllStatuses(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	widal, err := registry.CreateTest("Widal", "", "Serology")
	require.NoError(t, err)

	completeTest(t, store, widal, models.RankArmy, []string{"Positive"})
	patient := store.addPatient(&models.Patient{Name: "Patient", Rank: models.RankCivil})
	pending := &models.Test{PatientID: patient.ID, LabTestID: widal.ID, Status: models.TestPending}
	require.NoError(t, store.InsertTest(pending))

	rows, totals, err := NewReporter(store).ByTest(nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widal", rows[0].TestName)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[0].Army)
	assert.Equal(t, 1, rows[0].Civil)
	assert.Equal(t, 2, totals.Total)
}

func TestByCategoryValidatesBounds(t *testing.T) {
	reporter := NewReporter(newMemStore())
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var verr *ValidationError

	_, _, err := reporter.ByCategory(time.Time{}, day)
	require.ErrorAs(t, err, &verr)

	_, _, err = reporter.ByCategory(day, time.Time{})
	require.ErrorAs(t, err, &verr)

	_, _, err = reporter.ByCategory(day.AddDate(0, 0, 1), day)
	require.ErrorAs(t, err, &verr)
}

func TestByCategoryGroupsAndDefaults(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	widal, err := registry.CreateTest("Widal", "", "Serology")
	require.NoError(t, err)
	noCategory, err := registry.CreateTest("Misc Panel", "", "")
	require.NoError(t, err)

	completeTest(t, store, widal, models.RankArmy, []string{"Positive"})
	completeTest(t, store, widal, models.RankPension, []string{"Negative"})
	completeTest(t, store, noCategory, models.RankCivil, []string{"ok"})

	today := time.Now().Truncate(24 * time.Hour)
	rows, totals, err := NewReporter(store).ByCategory(today, today)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Serology", rows[0].Category)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, models.DefaultCategory, rows[1].Category)
	assert.Equal(t, 1, rows[1].Civil)
	assert.Equal(t, 3, totals.Total)
}

func TestByCategoryEndDateIsInclusive(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	widal, err := registry.CreateTest("Widal", "", "Serology")
	require.NoError(t, err)
	completeTest(t, store, widal, models.RankArmy, []string{"Positive"})

	today := time.Now().Truncate(24 * time.Hour)
	rows, _, err := NewReporter(store).ByCategory(today, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Total)
}

// pushdownStore wraps memStore with the pre-pivoted category query.
type pushdownStore struct {
	*memStore
}

func (s *pushdownStore) CategoryCounts(start, end time.Time) ([]*CategoryRow, error) {
	inputs, err := s.CompletedTestsBetween(start, end)
	if err != nil {
		return nil, err
	}
	return groupByCategory(inputs), nil
}

func TestByCategoryPushdownMatchesInMemory(t *testing.T) {
	store := newMemStore()
	registry := NewRegistry(store)
	widal, err := registry.CreateTest("Widal", "", "Serology")
	require.NoError(t, err)
	bloodCount, err := registry.CreateTest("Blood Count", "", "Hematology")
	require.NoError(t, err)

	completeTest(t, store, widal, models.RankArmy, []string{"Positive"})
	completeTest(t, store, bloodCount, models.RankArmyFamily, []string{"13.5"})
	completeTest(t, store, widal, models.RankCivil, []string{"Negative"})

	today := time.Now().Truncate(24 * time.Hour)

	plainRows, plainTotals, err := NewReporter(store).ByCategory(today, today)
	require.NoError(t, err)
	pushedRows, pushedTotals, err := NewReporter(&pushdownStore{store}).ByCategory(today, today)
	require.NoError(t, err)

	assert.Equal(t, plainRows, pushedRows)
	assert.Equal(t, plainTotals, pushedTotals)
}

func TestCategoryCSV(t *testing.T) {
	rows := []*CategoryRow{
		{Category: "Serology", Army: 2, Civil: 1, Total: 3},
		{Category: "Uncategorized", Pension: 1, Total: 1},
	}

	csv := CategoryCSV(rows)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Category,Army,Army Family,Civil,Pension,Total", lines[0])
	assert.Equal(t, "Serology,2,0,1,0,3", lines[1])
	assert.Equal(t, "Uncategorized,0,0,0,1,1", lines[2])
}

func TestCategoryCSVEmpty(t *testing.T) {
	csv := CategoryCSV(nil)
	assert.Equal(t, "Category,Army,Army Family,Civil,Pension,Total\n", csv)
}
