package lab

import (
	"sync"

	"github.com/google/uuid"

	"hospital-lab/app/models"
)

// Stage identifies a step in the clerk workflow.
type Stage string

const (
	StageRegistration Stage = "registration"
	StageAssignment   Stage = "assignment"
	StageDataEntry    Stage = "data-entry"
	StageConfirmation Stage = "confirmation"
)

// Session carries one clerk's workflow context: the patient being handled,
// the test currently in flight, and the last completion message. A session is
// never shared between clerks and runs one operation at a time.
type Session struct {
	ID                   string          `json:"id"`
	Stage                Stage           `json:"stage"`
	CurrentPatient       *models.Patient `json:"current_patient,omitempty"`
	CurrentTest          *models.Test    `json:"current_test,omitempty"`
	LastCompletedMessage string          `json:"last_completed_message,omitempty"`

	mu sync.Mutex
}

// SetPatient records the registered or selected patient and moves the
// session to the assignment stage.
func (s *Session) SetPatient(p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stage != StageRegistration {
		return &PreconditionError{Msg: "patient can only be set during registration"}
	}
	s.CurrentPatient = p
	s.Stage = StageAssignment
	return nil
}

// BeginDataEntry records the newly assigned pending test and moves the
// session to data entry. A patient must already be selected.
func (s *Session) BeginDataEntry(t *models.Test) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stage != StageAssignment {
		return &PreconditionError{Msg: "test assignment is only available from the assignment stage"}
	}
	if s.CurrentPatient == nil {
		return &PreconditionError{Msg: "no patient selected"}
	}
	s.CurrentTest = t
	s.Stage = StageDataEntry
	return nil
}

// CompleteDataEntry records the completion message and moves the session to
// confirmation. Called after the results pipeline has persisted the batch.
func (s *Session) CompleteDataEntry(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stage != StageDataEntry {
		return &PreconditionError{Msg: "no data entry in progress"}
	}
	if s.CurrentTest == nil {
		return &PreconditionError{Msg: "no test assigned"}
	}
	s.LastCompletedMessage = message
	s.Stage = StageConfirmation
	return nil
}

// StartNewPatient clears the whole context and returns to registration.
func (s *Session) StartNewPatient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stage != StageConfirmation {
		return &PreconditionError{Msg: "a new patient can only be started from confirmation"}
	}
	s.CurrentPatient = nil
	s.CurrentTest = nil
	s.LastCompletedMessage = ""
	s.Stage = StageRegistration
	return nil
}

// AddAnotherTest keeps the current patient, clears the finished test, and
// returns to the assignment stage.
func (s *Session) AddAnotherTest() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stage != StageConfirmation {
		return &PreconditionError{Msg: "another test can only be added from confirmation"}
	}
	if s.CurrentPatient == nil {
		return &PreconditionError{Msg: "no patient selected"}
	}
	s.CurrentTest = nil
	s.LastCompletedMessage = ""
	s.Stage = StageAssignment
	return nil
}

// SessionManager hands out and tracks workflow sessions by id.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager returns an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Create starts a fresh session in the registration stage.
func (m *SessionManager) Create() *Session {
	session := &Session{
		ID:    uuid.NewString(),
		Stage: StageRegistration,
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get resolves a session by id.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Resource: "session", ID: id}
	}
	return session, nil
}
