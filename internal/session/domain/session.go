package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/touchline/internal/id"
)

// SessionType identifies the kind of team event a session records.
type SessionType string

const (
	// SessionTypeTraining is a regular training session.
	SessionTypeTraining SessionType = "Training"
	// SessionTypeMatch is a competitive match.
	SessionTypeMatch SessionType = "Match"
	// SessionTypeEvent is any other club event.
	SessionTypeEvent SessionType = "Event"
)

// IsValid reports whether the session type is supported.
func (t SessionType) IsValid() bool {
	switch t {
	case SessionTypeTraining, SessionTypeMatch, SessionTypeEvent:
		return true
	default:
		return false
	}
}

// Session focus values offered when building a session.
const (
	FocusDribbling    = "Dribbling"
	FocusPassing      = "Passing"
	FocusShooting     = "Shooting"
	FocusDefending    = "Defending"
	FocusCoordination = "Coordination"
	FocusTeamwork     = "Teamwork"
	FocusValues       = "Social/Values"
	FocusFitness      = "General Fitness"
)

// FocusOptions lists every session focus in display order.
func FocusOptions() []string {
	return []string{
		FocusDribbling,
		FocusPassing,
		FocusShooting,
		FocusDefending,
		FocusCoordination,
		FocusTeamwork,
		FocusValues,
		FocusFitness,
	}
}

var (
	// ErrEmptySessionTeamID indicates a missing team reference.
	ErrEmptySessionTeamID = errors.New("session team id is required")
	// ErrEmptySessionPlanID indicates a missing training plan reference.
	ErrEmptySessionPlanID = errors.New("session training plan id is required")
	// ErrInvalidSessionType indicates a missing or invalid session type.
	ErrInvalidSessionType = errors.New("session type is required")
)

// Session represents one coaching session for a team. TeamID and
// TrainingPlanID are weak references.
type Session struct {
	ID             string
	TeamID         string
	TrainingPlanID string
	DateTime       time.Time
	Type           SessionType
	Focus          string
	Notes          string
}

// CreateSessionInput describes the metadata needed to create a session.
type CreateSessionInput struct {
	TeamID         string
	TrainingPlanID string
	Type           SessionType
	Focus          string
}

// CreateSession creates a new session with a generated ID, dated at the
// session-start instant.
func CreateSession(input CreateSessionInput, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateSessionInput(input)
	if err != nil {
		return Session{}, err
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	return Session{
		ID:             sessionID,
		TeamID:         normalized.TeamID,
		TrainingPlanID: normalized.TrainingPlanID,
		DateTime:       now().UTC(),
		Type:           normalized.Type,
		Focus:          normalized.Focus,
	}, nil
}

// NormalizeCreateSessionInput trims and validates session input metadata.
func NormalizeCreateSessionInput(input CreateSessionInput) (CreateSessionInput, error) {
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.TeamID == "" {
		return CreateSessionInput{}, ErrEmptySessionTeamID
	}
	input.TrainingPlanID = strings.TrimSpace(input.TrainingPlanID)
	if input.TrainingPlanID == "" {
		return CreateSessionInput{}, ErrEmptySessionPlanID
	}
	if !input.Type.IsValid() {
		return CreateSessionInput{}, ErrInvalidSessionType
	}
	input.Focus = strings.TrimSpace(input.Focus)
	return input, nil
}
