// Package service implements the coaching session workflow: a coach sets
// up a session, runs it drill by drill while tracking attendance and
// behavior, then reviews a summary and saves notes. The workflow advances
// through three stages and commits to history exactly once, at finish.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	"github.com/louisbranch/touchline/internal/id"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
	"github.com/louisbranch/touchline/internal/telemetry"
)

// Stage identifies where the workflow is in the session's life.
type Stage string

const (
	// StageCreate is the setup stage: pick a team, a focus, and drills.
	StageCreate Stage = "Create"
	// StageActive is the live stage: run drills, track the roster.
	StageActive Stage = "Active"
	// StageSummary is the review stage: read tallies, save notes.
	StageSummary Stage = "Summary"
)

var (
	ErrNotInCreateStage  = errors.New("session setup is closed")
	ErrNotInActiveStage  = errors.New("session is not running")
	ErrNotInSummaryStage = errors.New("session summary is not available")
	ErrTeamNotSelected   = errors.New("team is not selected")
	ErrNoDrillsSelected  = errors.New("no drills are selected")
	ErrPlayerNotOnRoster = errors.New("player is not on the session roster")
	ErrPlayerAbsent      = errors.New("player is marked absent")
)

// Stores collects the storage dependencies of the workflow.
type Stores struct {
	Teams    storage.TeamStore
	Players  storage.PlayerStore
	Drills   storage.DrillStore
	Plans    storage.PlanStore
	Sessions storage.SessionStore
}

// SummaryRow is one player's line in the session summary. Status and tags
// are suppressed for absent players.
type SummaryRow struct {
	PlayerID   string
	PlayerName string
	Present    bool
	Status     sessiondomain.BehaviorStatus
	Tags       []sessiondomain.BehaviorTag
	Note       string
}

// Summary is the post-session review: attendance tallies and one row per
// rostered player.
type Summary struct {
	SessionID    string
	TeamID       string
	PresentCount int
	TotalCount   int
	Players      []SummaryRow
}

type rosterEntry struct {
	playerID   string
	playerName string
}

// Workflow drives one session from setup through summary. A workflow is
// reusable: Reset returns it to the setup stage for the next session.
type Workflow struct {
	mu sync.Mutex

	stores      Stores
	telemetry   *telemetry.Emitter
	clock       func() time.Time
	idGenerator func() (string, error)

	stage       Stage
	teamID      string
	sessionType sessiondomain.SessionType
	focus       string
	drills      []catalogdomain.PlanDrill

	session    sessiondomain.Session
	roster     []rosterEntry
	rosterIdx  map[string]int
	attendance []sessiondomain.Attendance
	behavior   []sessiondomain.BehaviorEntry
	cursor     int
}

// NewWorkflow creates a workflow in the setup stage with default
// dependencies.
func NewWorkflow(stores Stores, emitter *telemetry.Emitter) *Workflow {
	return &Workflow{
		stores:      stores,
		telemetry:   emitter,
		clock:       time.Now,
		idGenerator: id.NewID,
		stage:       StageCreate,
		sessionType: sessiondomain.SessionTypeTraining,
		focus:       sessiondomain.FocusDribbling,
	}
}

// Stage reports the workflow's current stage.
func (w *Workflow) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// SelectTeam picks the team for the session being set up. Changing teams
// keeps the drill selection; the roster is only snapshotted at start.
func (w *Workflow) SelectTeam(ctx context.Context, teamID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("team id is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	if _, err := w.stores.Teams.GetTeam(ctx, teamID); err != nil {
		return fmt.Errorf("select team: %w", err)
	}
	w.teamID = teamID
	return nil
}

// SetFocus sets the session focus. An empty focus is allowed and falls
// back to a general theme at start.
func (w *Workflow) SetFocus(focus string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	w.focus = strings.TrimSpace(focus)
	return nil
}

// Focus returns the working session focus.
func (w *Workflow) Focus() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focus
}

// SetType sets the session type for the session being set up.
func (w *Workflow) SetType(sessionType sessiondomain.SessionType) error {
	if !sessionType.IsValid() {
		return sessiondomain.ErrInvalidSessionType
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	w.sessionType = sessionType
	return nil
}

// AddDrill appends a drill to the working selection with its catalog
// duration. Adding a drill twice is a no-op.
func (w *Workflow) AddDrill(ctx context.Context, drillID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	drillID = strings.TrimSpace(drillID)
	if drillID == "" {
		return fmt.Errorf("drill id is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	for _, selected := range w.drills {
		if selected.DrillID == drillID {
			return nil
		}
	}
	drill, err := w.stores.Drills.GetDrill(ctx, drillID)
	if err != nil {
		return fmt.Errorf("add drill: %w", err)
	}
	w.drills = append(w.drills, catalogdomain.PlanDrill{DrillID: drill.ID, Duration: drill.Duration})
	return nil
}

// RemoveDrill drops a drill from the working selection. Removing a drill
// that is not selected is a no-op.
func (w *Workflow) RemoveDrill(drillID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	for i, selected := range w.drills {
		if selected.DrillID == drillID {
			w.drills = append(w.drills[:i], w.drills[i+1:]...)
			return nil
		}
	}
	return nil
}

// LoadPlan replaces the working drill selection with a saved training
// plan's drills and durations, and adopts the plan's theme as the focus.
func (w *Workflow) LoadPlan(ctx context.Context, planID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	plan, err := w.stores.Plans.GetPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	w.drills = make([]catalogdomain.PlanDrill, len(plan.Drills))
	copy(w.drills, plan.Drills)
	if plan.Theme != "" {
		w.focus = plan.Theme
	}
	return nil
}

// SelectedDrills returns the working drill selection in order.
func (w *Workflow) SelectedDrills() []catalogdomain.PlanDrill {
	w.mu.Lock()
	defer w.mu.Unlock()
	drills := make([]catalogdomain.PlanDrill, len(w.drills))
	copy(drills, w.drills)
	return drills
}

// CanStart reports whether the setup is complete enough to start: a team
// is selected and at least one drill is queued.
func (w *Workflow) CanStart() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage == StageCreate && w.teamID != "" && len(w.drills) > 0
}

// Start begins the session: it persists the drill selection as a training
// plan, dates the session at the current instant, and snapshots the team
// roster with everyone present on green.
func (w *Workflow) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCreate {
		return ErrNotInCreateStage
	}
	if w.teamID == "" {
		return ErrTeamNotSelected
	}
	if len(w.drills) == 0 {
		return ErrNoDrillsSelected
	}

	theme := w.focus
	if theme == "" {
		theme = "General Session"
	}
	plan, err := catalogdomain.CreatePlan(catalogdomain.CreatePlanInput{
		Name:   "Session Plan - " + w.clock().UTC().Format("2006-01-02"),
		Theme:  theme,
		Drills: w.drills,
	}, w.clock, w.idGenerator)
	if err != nil {
		return fmt.Errorf("synthesize session plan: %w", err)
	}
	if err := w.stores.Plans.PutPlan(ctx, plan); err != nil {
		return fmt.Errorf("persist session plan: %w", err)
	}

	session, err := sessiondomain.CreateSession(sessiondomain.CreateSessionInput{
		TeamID:         w.teamID,
		TrainingPlanID: plan.ID,
		Type:           w.sessionType,
		Focus:          w.focus,
	}, w.clock, w.idGenerator)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	players, err := w.stores.Players.ListPlayersByTeam(ctx, w.teamID)
	if err != nil {
		return fmt.Errorf("snapshot roster: %w", err)
	}

	w.session = session
	w.roster = make([]rosterEntry, 0, len(players))
	w.rosterIdx = make(map[string]int, len(players))
	w.attendance = make([]sessiondomain.Attendance, 0, len(players))
	w.behavior = make([]sessiondomain.BehaviorEntry, 0, len(players))
	for i, player := range players {
		w.roster = append(w.roster, rosterEntry{playerID: player.ID, playerName: player.Name})
		w.rosterIdx[player.ID] = i
		w.attendance = append(w.attendance, sessiondomain.Attendance{
			SessionID: session.ID,
			PlayerID:  player.ID,
			Present:   true,
		})
		w.behavior = append(w.behavior, sessiondomain.BehaviorEntry{
			SessionID: session.ID,
			PlayerID:  player.ID,
			Status:    sessiondomain.BehaviorStatusGreen,
		})
	}
	w.cursor = 0
	w.stage = StageActive
	return nil
}

// ActiveDrill pairs the plan entry under the cursor with its resolved
// catalog drill. The plan entry's duration wins for display; Drill is
// zero when the catalog record has since gone missing.
type ActiveDrill struct {
	PlanDrill catalogdomain.PlanDrill
	Drill     catalogdomain.Drill
}

// CurrentDrill returns the drill under the cursor. A dangling drill
// reference is not an error; the plan entry still carries enough to run.
func (w *Workflow) CurrentDrill(ctx context.Context) (ActiveDrill, error) {
	if err := ctx.Err(); err != nil {
		return ActiveDrill{}, err
	}

	w.mu.Lock()
	if w.stage != StageActive {
		w.mu.Unlock()
		return ActiveDrill{}, ErrNotInActiveStage
	}
	current := ActiveDrill{PlanDrill: w.drills[w.cursor]}
	w.mu.Unlock()

	drill, err := w.stores.Drills.GetDrill(ctx, current.PlanDrill.DrillID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return current, nil
		}
		return ActiveDrill{}, fmt.Errorf("current drill: %w", err)
	}
	current.Drill = drill
	return current, nil
}

// Cursor reports the index of the current drill within the selection.
func (w *Workflow) Cursor() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// Advance moves the drill cursor by delta, clamped to the selection
// bounds. It never wraps.
func (w *Workflow) Advance(delta int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageActive {
		return ErrNotInActiveStage
	}
	next := w.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(w.drills)-1 {
		next = len(w.drills) - 1
	}
	w.cursor = next
	return nil
}

// ToggleAttendance flips a rostered player between present and absent.
// The player's behavior status is retained either way.
func (w *Workflow) ToggleAttendance(playerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageActive {
		return ErrNotInActiveStage
	}
	idx, ok := w.rosterIdx[playerID]
	if !ok {
		return ErrPlayerNotOnRoster
	}
	w.attendance[idx].Present = !w.attendance[idx].Present
	return nil
}

// CycleBehavior steps a present player's status to the next one in the
// cycle. Absent players cannot be cycled.
func (w *Workflow) CycleBehavior(playerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageActive {
		return ErrNotInActiveStage
	}
	idx, ok := w.rosterIdx[playerID]
	if !ok {
		return ErrPlayerNotOnRoster
	}
	if !w.attendance[idx].Present {
		return ErrPlayerAbsent
	}
	w.behavior[idx].Status = w.behavior[idx].Status.Next()
	return nil
}

// ToggleBehaviorTag adds or removes a tag on a present player's entry.
func (w *Workflow) ToggleBehaviorTag(playerID string, tag sessiondomain.BehaviorTag) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageActive {
		return ErrNotInActiveStage
	}
	idx, ok := w.rosterIdx[playerID]
	if !ok {
		return ErrPlayerNotOnRoster
	}
	if !w.attendance[idx].Present {
		return ErrPlayerAbsent
	}
	w.behavior[idx] = w.behavior[idx].ToggleTag(tag)
	return nil
}

// SetBehaviorNote sets the free-text note on a rostered player's entry.
func (w *Workflow) SetBehaviorNote(playerID, note string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageActive {
		return ErrNotInActiveStage
	}
	idx, ok := w.rosterIdx[playerID]
	if !ok {
		return ErrPlayerNotOnRoster
	}
	w.behavior[idx].Note = strings.TrimSpace(note)
	return nil
}

// Attendance returns the live attendance rows in roster order.
func (w *Workflow) Attendance() []sessiondomain.Attendance {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows := make([]sessiondomain.Attendance, len(w.attendance))
	copy(rows, w.attendance)
	return rows
}

// Finish commits the session with its full roster snapshot to history in
// one write and moves the workflow to the summary stage.
func (w *Workflow) Finish(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageActive {
		return ErrNotInActiveStage
	}

	record := storage.SessionRecord{
		Session:    w.session,
		Attendance: make([]sessiondomain.Attendance, len(w.attendance)),
		Behavior:   make([]sessiondomain.BehaviorEntry, len(w.behavior)),
	}
	copy(record.Attendance, w.attendance)
	copy(record.Behavior, w.behavior)

	if err := w.stores.Sessions.AppendSessionRecord(ctx, record); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	w.stage = StageSummary

	if err := w.telemetry.EmitSessionFinished(ctx, w.session.ID, w.session.TeamID); err != nil {
		return fmt.Errorf("emit session finished: %w", err)
	}
	return nil
}

// Summary returns the post-session review. Absent players appear with
// their status and tags suppressed.
func (w *Workflow) Summary() (Summary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageSummary {
		return Summary{}, ErrNotInSummaryStage
	}

	summary := Summary{
		SessionID:  w.session.ID,
		TeamID:     w.session.TeamID,
		TotalCount: len(w.roster),
		Players:    make([]SummaryRow, 0, len(w.roster)),
	}
	for i, entry := range w.roster {
		row := SummaryRow{
			PlayerID:   entry.playerID,
			PlayerName: entry.playerName,
			Present:    w.attendance[i].Present,
			Note:       w.behavior[i].Note,
		}
		if row.Present {
			summary.PresentCount++
			row.Status = w.behavior[i].Status
			row.Tags = append(row.Tags, w.behavior[i].Tags...)
		}
		summary.Players = append(summary.Players, row)
	}
	return summary, nil
}

// CanSaveNotes reports whether saving the given notes text would change
// anything. It stays false until the text differs from the last saved value.
func (w *Workflow) CanSaveNotes(notes string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage == StageSummary && strings.TrimSpace(notes) != w.session.Notes
}

// SaveNotes writes the coach's notes onto the committed session. Saving
// again replaces the previous notes; saving unchanged text is a no-op.
func (w *Workflow) SaveNotes(ctx context.Context, notes string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageSummary {
		return ErrNotInSummaryStage
	}

	notes = strings.TrimSpace(notes)
	if notes == w.session.Notes {
		return nil
	}
	if err := w.stores.Sessions.UpdateSessionNotes(ctx, w.session.ID, notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	w.session.Notes = notes

	if err := w.telemetry.EmitNotesSaved(ctx, w.session.ID, w.session.TeamID); err != nil {
		return fmt.Errorf("emit notes saved: %w", err)
	}
	return nil
}

// Reset returns the workflow to the setup stage for the next session.
// Committed history is unaffected.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stage = StageCreate
	w.teamID = ""
	w.sessionType = sessiondomain.SessionTypeTraining
	w.focus = sessiondomain.FocusDribbling
	w.drills = nil
	w.session = sessiondomain.Session{}
	w.roster = nil
	w.rosterIdx = nil
	w.attendance = nil
	w.behavior = nil
	w.cursor = 0
}
