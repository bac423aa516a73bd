package lab

import (
	"strconv"
	"strings"
	"time"

	"hospital-lab/app/models"
)

// blankResult marks a completed test that was saved without any result rows
// in the summary pivot.
const blankResult = "-"

// SummaryRow is one line of the lab summary pivot: a (test, result value)
// pair with per-rank contribution counts.
type SummaryRow struct {
	TestName   string `json:"test_name"`
	Result     string `json:"result"`
	Army       int    `json:"army"`
	ArmyFamily int    `json:"army_family"`
	Civil      int    `json:"civil"`
	Pension    int    `json:"pension"`
	Total      int    `json:"total"`
}

// CategoryRow is one line of the by-category pivot.
type CategoryRow struct {
	Category   string `json:"category"`
	Army       int    `json:"army"`
	ArmyFamily int    `json:"army_family"`
	Civil      int    `json:"civil"`
	Pension    int    `json:"pension"`
	Total      int    `json:"total"`
}

// TestRow is one line of the by-test pivot.
type TestRow struct {
	TestName   string `json:"test_name"`
	Army       int    `json:"army"`
	ArmyFamily int    `json:"army_family"`
	Civil      int    `json:"civil"`
	Pension    int    `json:"pension"`
	Total      int    `json:"total"`
}

// Totals is the grand-total line across a pivot's rows.
type Totals struct {
	Army       int `json:"army"`
	ArmyFamily int `json:"army_family"`
	Civil      int `json:"civil"`
	Pension    int `json:"pension"`
	Total      int `json:"total"`
}

func (t *Totals) add(rank models.Rank) {
	switch rank {
	case models.RankArmy:
		t.Army++
	case models.RankArmyFamily:
		t.ArmyFamily++
	case models.RankCivil:
		t.Civil++
	case models.RankPension:
		t.Pension++
	}
	t.Total++
}

// Reporter builds the aggregated report pivots from persisted tests and
// results. It only reads; the live workflow never depends on it.
type Reporter struct {
	Store ReportStore
}

// NewReporter returns a Reporter over the given store.
func NewReporter(store ReportStore) *Reporter {
	return &Reporter{Store: store}
}

// Summary pivots completed tests by (test name, result value) with per-rank
// counts. A completed test with no result rows still contributes one row,
// with "-" in the result column. Row order is discovery order.
func (r *Reporter) Summary() ([]*SummaryRow, Totals, error) {
	completed, err := r.Store.CompletedTests()
	if err != nil {
		return nil, Totals{}, err
	}

	var rows []*SummaryRow
	index := make(map[[2]string]*SummaryRow)
	var totals Totals

	tally := func(testName, result string, rank models.Rank) {
		key := [2]string{testName, result}
		row, ok := index[key]
		if !ok {
			row = &SummaryRow{TestName: testName, Result: result}
			index[key] = row
			rows = append(rows, row)
		}
		switch rank {
		case models.RankArmy:
			row.Army++
		case models.RankArmyFamily:
			row.ArmyFamily++
		case models.RankCivil:
			row.Civil++
		case models.RankPension:
			row.Pension++
		}
		row.Total++
		totals.add(rank)
	}

	for _, test := range completed {
		if len(test.Results) == 0 {
			tally(test.TestName, blankResult, test.Rank)
			continue
		}
		for _, result := range test.Results {
			tally(test.TestName, result, test.Rank)
		}
	}

	return rows, totals, nil
}

// ByTest pivots assigned tests by test name with per-rank counts. Either
// creation-time bound may be omitted.
func (r *Reporter) ByTest(from, to *time.Time) ([]*TestRow, Totals, error) {
	tests, err := r.Store.TestsByRank(from, to)
	if err != nil {
		return nil, Totals{}, err
	}

	var rows []*TestRow
	index := make(map[string]*TestRow)
	var totals Totals

	for _, test := range tests {
		row, ok := index[test.TestName]
		if !ok {
			row = &TestRow{TestName: test.TestName}
			index[test.TestName] = row
			rows = append(rows, row)
		}
		switch test.Rank {
		case models.RankArmy:
			row.Army++
		case models.RankArmyFamily:
			row.ArmyFamily++
		case models.RankCivil:
			row.Civil++
		case models.RankPension:
			row.Pension++
		}
		row.Total++
		totals.add(test.Rank)
	}

	return rows, totals, nil
}

// ByCategory pivots completed tests created in the inclusive [start, end]
// date range by lab test category. Both bounds are required and start must
// not be after end. Tests without a category land under Uncategorized.
//
// When the store can pre-pivot the counts itself the pushed-down query is
// used; otherwise the rows are grouped here. The output is the same either
// way.
func (r *Reporter) ByCategory(start, end time.Time) ([]*CategoryRow, Totals, error) {
	if start.IsZero() || end.IsZero() {
		return nil, Totals{}, NewValidationError("both start and end dates are required")
	}
	if start.After(end) {
		return nil, Totals{}, NewValidationError("start date must not be after end date")
	}

	// The end bound is a date: cover the whole day.
	endExclusive := end.AddDate(0, 0, 1)

	var rows []*CategoryRow
	if agg, ok := r.Store.(CategoryAggregator); ok {
		pushed, err := agg.CategoryCounts(start, endExclusive)
		if err != nil {
			return nil, Totals{}, err
		}
		rows = pushed
	} else {
		inputs, err := r.Store.CompletedTestsBetween(start, endExclusive)
		if err != nil {
			return nil, Totals{}, err
		}
		rows = groupByCategory(inputs)
	}

	var totals Totals
	for _, row := range rows {
		totals.Army += row.Army
		totals.ArmyFamily += row.ArmyFamily
		totals.Civil += row.Civil
		totals.Pension += row.Pension
		totals.Total += row.Total
	}
	return rows, totals, nil
}

func groupByCategory(inputs []CategoryInput) []*CategoryRow {
	var rows []*CategoryRow
	index := make(map[string]*CategoryRow)

	for _, input := range inputs {
		category := input.Category
		if category == "" {
			category = models.DefaultCategory
		}
		row, ok := index[category]
		if !ok {
			row = &CategoryRow{Category: category}
			index[category] = row
			rows = append(rows, row)
		}
		switch input.Rank {
		case models.RankArmy:
			row.Army++
		case models.RankArmyFamily:
			row.ArmyFamily++
		case models.RankCivil:
			row.Civil++
		case models.RankPension:
			row.Pension++
		}
		row.Total++
	}
	return rows
}

// CategoryCSV renders the by-category pivot as a comma-separated file with
// one data row per pivot row.
func CategoryCSV(rows []*CategoryRow) string {
	var b strings.Builder
	b.WriteString("Category,Army,Army Family,Civil,Pension,Total\n")
	for _, row := range rows {
		b.WriteString(row.Category)
		for _, n := range []int{row.Army, row.ArmyFamily, row.Civil, row.Pension, row.Total} {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(n))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
