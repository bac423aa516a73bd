package lab

import "hospital-lab/app/models"

// Pipeline validates a data-entry submission against the test's field schema
// and persists the normalized results.
type Pipeline struct {
	Schema SchemaStore
	Tests  TestStore
}

// NewPipeline returns a Pipeline over the given stores.
func NewPipeline(schema SchemaStore, tests TestStore) *Pipeline {
	return &Pipeline{Schema: schema, Tests: tests}
}

// Submit runs the submitted field values through schema validation and, on
// success, atomically completes the test and inserts one result row per
// captured value.
//
// Submitted names with no matching field are dropped without error — the
// schema may have drifted since the entry form was rendered. A validation
// failure on any required field rejects the whole batch; blank optional
// fields are simply left out. Nothing is persisted unless the entire batch
// goes through.
func (p *Pipeline) Submit(testID string, values map[string]string) (*models.Test, error) {
	test, err := p.Tests.GetTest(testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, &NotFoundError{Resource: "test", ID: testID}
	}
	if test.Status != models.TestPending {
		return nil, &PreconditionError{Msg: "test results have already been saved"}
	}

	fields, err := p.Schema.ListFields(test.LabTestID)
	if err != nil {
		return nil, err
	}

	var rows []*models.TestResult
	var failures []*FieldError
	for _, field := range fields {
		raw, submitted := values[field.FieldName]
		if !submitted {
			raw = ""
		}

		value, omit, ferr := Validate(field, raw)
		if ferr != nil {
			if field.IsRequired {
				failures = append(failures, ferr)
			}
			// An invalid value on an optional field is treated like a
			// blank one: left out of the batch.
			continue
		}
		if omit {
			continue
		}

		rows = append(rows, &models.TestResult{
			TestID:     test.ID,
			FieldID:    field.ID,
			FieldName:  field.FieldName,
			FieldValue: value,
		})
	}

	if len(failures) > 0 {
		return nil, &PipelineError{Kind: PipelineValidationFailed, Fields: failures}
	}
	if len(rows) == 0 {
		return nil, &PipelineError{Kind: PipelineNoData}
	}

	if err := p.Tests.CompleteTestWithResults(test.ID, rows); err != nil {
		return nil, err
	}

	test.Status = models.TestCompleted
	test.Results = rows
	return test, nil
}
