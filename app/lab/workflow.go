package lab

import (
	"fmt"

	"hospital-lab/app/models"
)

// Workflow drives a clerk session through registration, assignment, data
// entry and confirmation, emitting operator-facing events along the way.
type Workflow struct {
	Sessions *SessionManager
	Registry *Registry
	Pipeline *Pipeline
	Tests    TestStore
	Notifier Notifier
}

// NewWorkflow wires the workflow engine over its collaborators.
func NewWorkflow(sessions *SessionManager, registry *Registry, pipeline *Pipeline, tests TestStore, notifier Notifier) *Workflow {
	return &Workflow{
		Sessions: sessions,
		Registry: registry,
		Pipeline: pipeline,
		Tests:    tests,
		Notifier: notifier,
	}
}

func (w *Workflow) notify(event, detail string) {
	if w.Notifier != nil {
		w.Notifier.Notify(event, detail)
	}
}

// SetPatient attaches a registered or selected patient to the session and
// advances it to the assignment stage.
func (w *Workflow) SetPatient(session *Session, patient *models.Patient) error {
	if err := session.SetPatient(patient); err != nil {
		return err
	}
	w.notify("Patient Registered", fmt.Sprintf("Successfully registered %s", patient.Name))
	return nil
}

// AssignTest creates a pending test for the session's patient and advances
// the session to data entry.
func (w *Workflow) AssignTest(session *Session, labTestID string) (*models.Test, error) {
	if session.Stage != StageAssignment {
		return nil, &PreconditionError{Msg: "test assignment is only available from the assignment stage"}
	}
	if session.CurrentPatient == nil {
		return nil, &PreconditionError{Msg: "no patient selected"}
	}

	labTest, err := w.Registry.GetTest(labTestID)
	if err != nil {
		return nil, err
	}

	test := &models.Test{
		PatientID: session.CurrentPatient.ID,
		LabTestID: labTest.ID,
		Status:    models.TestPending,
		LabTest:   labTest,
	}
	if err := w.Tests.InsertTest(test); err != nil {
		return nil, err
	}

	if err := session.BeginDataEntry(test); err != nil {
		return nil, err
	}
	w.notify("Test Assigned Successfully", fmt.Sprintf("%s assigned to %s", labTest.Name, session.CurrentPatient.Name))
	return test, nil
}

// SaveResults runs the session's pending test through the results pipeline
// and, on success, advances the session to confirmation.
func (w *Workflow) SaveResults(session *Session, values map[string]string) (*models.Test, error) {
	if session.Stage != StageDataEntry || session.CurrentTest == nil {
		return nil, &PreconditionError{Msg: "no data entry in progress"}
	}

	test, err := w.Pipeline.Submit(session.CurrentTest.ID, values)
	if err != nil {
		return nil, err
	}

	if err := session.CompleteDataEntry("Test results saved successfully"); err != nil {
		return nil, err
	}
	session.CurrentTest = test
	w.notify("Test Results Saved", "Results have been saved successfully")
	return test, nil
}
