package lab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-lab/app/models"
)

func TestSessionManagerCreateAndGet(t *testing.T) {
	manager := NewSessionManager()

	session := manager.Create()
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, StageRegistration, session.Stage)

	got, err := manager.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = manager.Get("missing")
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestSessionHappyPath(t *testing.T) {
	session := NewSessionManager().Create()
	patient := &models.Patient{ID: "p1", Name: "Okello James", Rank: models.RankArmy}
	test := &models.Test{ID: "t1", PatientID: "p1", Status: models.TestPending}

	require.NoError(t, session.SetPatient(patient))
	assert.Equal(t, StageAssignment, session.Stage)

	require.NoError(t, session.BeginDataEntry(test))
	assert.Equal(t, StageDataEntry, session.Stage)

	require.NoError(t, session.CompleteDataEntry("Test results saved successfully"))
	assert.Equal(t, StageConfirmation, session.Stage)
	assert.Equal(t, "Test results saved successfully", session.LastCompletedMessage)
}

func TestSessionAddAnotherTestKeepsPatient(t *testing.T) {
	session := NewSessionManager().Create()
	patient := &models.Patient{ID: "p1", Name: "Okello James"}

	require.NoError(t, session.SetPatient(patient))
	require.NoError(t, session.BeginDataEntry(&models.Test{ID: "t1"}))
	require.NoError(t, session.CompleteDataEntry("done"))

	require.NoError(t, session.AddAnotherTest())
	assert.Equal(t, StageAssignment, session.Stage)
	assert.Same(t, patient, session.CurrentPatient)
	assert.Nil(t, session.CurrentTest)
	assert.Empty(t, session.LastCompletedMessage)
}

func TestSessionStartNewPatientClearsContext(t *testing.T) {
	session := NewSessionManager().Create()

	require.NoError(t, session.SetPatient(&models.Patient{ID: "p1"}))
	require.NoError(t, session.BeginDataEntry(&models.Test{ID: "t1"}))
	require.NoError(t, session.CompleteDataEntry("done"))

	require.NoError(t, session.StartNewPatient())
	assert.Equal(t, StageRegistration, session.Stage)
	assert.Nil(t, session.CurrentPatient)
	assert.Nil(t, session.CurrentTest)
	assert.Empty(t, session.LastCompletedMessage)
}

func TestSessionTransitionGuards(t *testing.T) {
	var perr *PreconditionError

	session := NewSessionManager().Create()

	// Nothing but SetPatient is allowed from registration.
	require.ErrorAs(t, session.BeginDataEntry(&models.Test{ID: "t1"}), &perr)
	require.ErrorAs(t, session.CompleteDataEntry("done"), &perr)
	require.ErrorAs(t, session.StartNewPatient(), &perr)
	require.ErrorAs(t, session.AddAnotherTest(), &perr)

	require.NoError(t, session.SetPatient(&models.Patient{ID: "p1"}))

	// From assignment, a second SetPatient and a premature completion fail.
	require.ErrorAs(t, session.SetPatient(&models.Patient{ID: "p2"}), &perr)
	require.ErrorAs(t, session.CompleteDataEntry("done"), &perr)
	require.ErrorAs(t, session.AddAnotherTest(), &perr)

	require.NoError(t, session.BeginDataEntry(&models.Test{ID: "t1"}))

	// From data entry, only CompleteDataEntry advances.
	require.ErrorAs(t, session.SetPatient(&models.Patient{ID: "p2"}), &perr)
	require.ErrorAs(t, session.BeginDataEntry(&models.Test{ID: "t2"}), &perr)
	require.ErrorAs(t, session.StartNewPatient(), &perr)

	require.NoError(t, session.CompleteDataEntry("done"))

	// From confirmation, data entry operations fail.
	require.ErrorAs(t, session.BeginDataEntry(&models.Test{ID: "t2"}), &perr)
	require.ErrorAs(t, session.CompleteDataEntry("again"), &perr)
}
