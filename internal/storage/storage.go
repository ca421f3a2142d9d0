package storage

import (
	"context"
	"errors"
	"time"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	clubdomain "github.com/louisbranch/touchline/internal/club/domain"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// TeamStore persists team records.
type TeamStore interface {
	PutTeam(ctx context.Context, team clubdomain.Team) error
	GetTeam(ctx context.Context, id string) (clubdomain.Team, error)
	ListTeams(ctx context.Context) ([]clubdomain.Team, error)
}

// PlayerStore persists player records. DeletePlayer removes only the player
// record; historical attendance and behavior rows are left in place.
type PlayerStore interface {
	PutPlayer(ctx context.Context, player clubdomain.Player) error
	GetPlayer(ctx context.Context, id string) (clubdomain.Player, error)
	ListPlayers(ctx context.Context) ([]clubdomain.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID string) ([]clubdomain.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

// DrillStore persists drill records. PutDrill replaces whole records; there
// is no partial edit.
type DrillStore interface {
	PutDrill(ctx context.Context, drill catalogdomain.Drill) error
	GetDrill(ctx context.Context, id string) (catalogdomain.Drill, error)
	ListDrills(ctx context.Context) ([]catalogdomain.Drill, error)
}

// PlanStore persists training-plan records.
type PlanStore interface {
	PutPlan(ctx context.Context, plan catalogdomain.TrainingPlan) error
	GetPlan(ctx context.Context, id string) (catalogdomain.TrainingPlan, error)
	ListPlans(ctx context.Context) ([]catalogdomain.TrainingPlan, error)
}

// SessionRecord is the unit committed when a session finishes: the session
// plus its full attendance and behavior roster snapshot.
type SessionRecord struct {
	Session    sessiondomain.Session
	Attendance []sessiondomain.Attendance
	Behavior   []sessiondomain.BehaviorEntry
}

// SessionStore persists finished session records. AppendSessionRecord
// writes the session and both roster collections as one logical unit; an
// in-progress session is never visible through this interface.
type SessionStore interface {
	AppendSessionRecord(ctx context.Context, record SessionRecord) error
	GetSession(ctx context.Context, id string) (sessiondomain.Session, error)
	ListSessionsByTeam(ctx context.Context, teamID string) ([]sessiondomain.Session, error)
	UpdateSessionNotes(ctx context.Context, id, notes string) error
	GetAttendance(ctx context.Context, sessionID, playerID string) (sessiondomain.Attendance, error)
	ListAttendanceBySession(ctx context.Context, sessionID string) ([]sessiondomain.Attendance, error)
	GetBehaviorEntry(ctx context.Context, sessionID, playerID string) (sessiondomain.BehaviorEntry, error)
	ListBehaviorBySession(ctx context.Context, sessionID string) ([]sessiondomain.BehaviorEntry, error)
}

// TelemetryEvent captures one operational event.
type TelemetryEvent struct {
	Timestamp time.Time
	Type      string
	SessionID string
	TeamID    string
	Detail    string
}

// TelemetryStore records operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}

// Snapshot is a full export of the entity store, in insertion order, used
// by the external persistence collaborator for load/save.
type Snapshot struct {
	Teams    []clubdomain.Team
	Players  []clubdomain.Player
	Drills   []catalogdomain.Drill
	Plans    []catalogdomain.TrainingPlan
	Sessions []SessionRecord
}
