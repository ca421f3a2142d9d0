// Package memory provides the in-process entity store backing the
// coaching workflow. State is process-lifetime: it is seeded once at
// startup and lost on exit unless exported through a snapshot.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	clubdomain "github.com/louisbranch/touchline/internal/club/domain"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
)

type sessionKey struct {
	sessionID string
	playerID  string
}

// Store holds every entity collection in insertion order with id indexes
// maintained on each mutation. Lookups never hand out references into a
// stale copy; list results are fresh slices.
type Store struct {
	mu sync.RWMutex

	teams     []clubdomain.Team
	teamIdx   map[string]int
	players   []clubdomain.Player
	playerIdx map[string]int
	drills    []catalogdomain.Drill
	drillIdx  map[string]int
	plans     []catalogdomain.TrainingPlan
	planIdx   map[string]int

	sessions   []sessiondomain.Session
	sessionIdx map[string]int
	attendance map[sessionKey]sessiondomain.Attendance
	behavior   map[sessionKey]sessiondomain.BehaviorEntry
	// per-session roster order, as snapshotted at session start
	roster map[string][]string

	telemetry []storage.TelemetryEvent
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		teamIdx:    make(map[string]int),
		playerIdx:  make(map[string]int),
		drillIdx:   make(map[string]int),
		planIdx:    make(map[string]int),
		sessionIdx: make(map[string]int),
		attendance: make(map[sessionKey]sessiondomain.Attendance),
		behavior:   make(map[sessionKey]sessiondomain.BehaviorEntry),
		roster:     make(map[string][]string),
	}
}

// PutTeam inserts or replaces a team record.
func (s *Store) PutTeam(ctx context.Context, team clubdomain.Team) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(team.ID) == "" {
		return fmt.Errorf("team id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.teamIdx[team.ID]; ok {
		s.teams[idx] = team
		return nil
	}
	s.teamIdx[team.ID] = len(s.teams)
	s.teams = append(s.teams, team)
	return nil
}

// GetTeam fetches a team record by ID.
func (s *Store) GetTeam(ctx context.Context, id string) (clubdomain.Team, error) {
	if err := ctx.Err(); err != nil {
		return clubdomain.Team{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.teamIdx[id]
	if !ok {
		return clubdomain.Team{}, storage.ErrNotFound
	}
	return s.teams[idx], nil
}

// ListTeams returns every team in insertion order.
func (s *Store) ListTeams(ctx context.Context) ([]clubdomain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]clubdomain.Team, len(s.teams))
	copy(teams, s.teams)
	return teams, nil
}

// PutPlayer inserts or replaces a player record.
func (s *Store) PutPlayer(ctx context.Context, player clubdomain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(player.ID) == "" {
		return fmt.Errorf("player id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.playerIdx[player.ID]; ok {
		s.players[idx] = player
		return nil
	}
	s.playerIdx[player.ID] = len(s.players)
	s.players = append(s.players, player)
	return nil
}

// GetPlayer fetches a player record by ID.
func (s *Store) GetPlayer(ctx context.Context, id string) (clubdomain.Player, error) {
	if err := ctx.Err(); err != nil {
		return clubdomain.Player{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.playerIdx[id]
	if !ok {
		return clubdomain.Player{}, storage.ErrNotFound
	}
	return s.players[idx], nil
}

// ListPlayers returns every player in insertion order.
func (s *Store) ListPlayers(ctx context.Context) ([]clubdomain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]clubdomain.Player, len(s.players))
	copy(players, s.players)
	return players, nil
}

// ListPlayersByTeam returns the players whose TeamID matches, in insertion
// order.
func (s *Store) ListPlayersByTeam(ctx context.Context, teamID string) ([]clubdomain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []clubdomain.Player
	for _, player := range s.players {
		if player.TeamID == teamID {
			players = append(players, player)
		}
	}
	return players, nil
}

// DeletePlayer removes a player record. Historical attendance and behavior
// rows referencing the player are intentionally left untouched.
func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.playerIdx[id]
	if !ok {
		return storage.ErrNotFound
	}
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	delete(s.playerIdx, id)
	for i := idx; i < len(s.players); i++ {
		s.playerIdx[s.players[i].ID] = i
	}
	return nil
}

// PutDrill inserts or replaces a drill record.
func (s *Store) PutDrill(ctx context.Context, drill catalogdomain.Drill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(drill.ID) == "" {
		return fmt.Errorf("drill id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.drillIdx[drill.ID]; ok {
		s.drills[idx] = drill
		return nil
	}
	s.drillIdx[drill.ID] = len(s.drills)
	s.drills = append(s.drills, drill)
	return nil
}

// GetDrill fetches a drill record by ID.
func (s *Store) GetDrill(ctx context.Context, id string) (catalogdomain.Drill, error) {
	if err := ctx.Err(); err != nil {
		return catalogdomain.Drill{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.drillIdx[id]
	if !ok {
		return catalogdomain.Drill{}, storage.ErrNotFound
	}
	return s.drills[idx], nil
}

// ListDrills returns the full catalog in insertion order.
func (s *Store) ListDrills(ctx context.Context) ([]catalogdomain.Drill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	drills := make([]catalogdomain.Drill, len(s.drills))
	copy(drills, s.drills)
	return drills, nil
}

// PutPlan inserts or replaces a training-plan record.
func (s *Store) PutPlan(ctx context.Context, plan catalogdomain.TrainingPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(plan.ID) == "" {
		return fmt.Errorf("plan id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.planIdx[plan.ID]; ok {
		s.plans[idx] = plan
		return nil
	}
	s.planIdx[plan.ID] = len(s.plans)
	s.plans = append(s.plans, plan)
	return nil
}

// GetPlan fetches a training-plan record by ID.
func (s *Store) GetPlan(ctx context.Context, id string) (catalogdomain.TrainingPlan, error) {
	if err := ctx.Err(); err != nil {
		return catalogdomain.TrainingPlan{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.planIdx[id]
	if !ok {
		return catalogdomain.TrainingPlan{}, storage.ErrNotFound
	}
	return s.plans[idx], nil
}

// ListPlans returns every training plan in insertion order.
func (s *Store) ListPlans(ctx context.Context) ([]catalogdomain.TrainingPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	plans := make([]catalogdomain.TrainingPlan, len(s.plans))
	copy(plans, s.plans)
	return plans, nil
}

// AppendSessionRecord commits a finished session with its attendance and
// behavior roster snapshot as one unit.
func (s *Store) AppendSessionRecord(ctx context.Context, record storage.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(record.Session.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if len(record.Attendance) != len(record.Behavior) {
		return fmt.Errorf("attendance and behavior rosters must match: %d != %d",
			len(record.Attendance), len(record.Behavior))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID := record.Session.ID
	if _, ok := s.sessionIdx[sessionID]; ok {
		return fmt.Errorf("session %s already recorded", sessionID)
	}

	s.sessionIdx[sessionID] = len(s.sessions)
	s.sessions = append(s.sessions, record.Session)
	order := make([]string, 0, len(record.Attendance))
	for _, attendance := range record.Attendance {
		key := sessionKey{sessionID: sessionID, playerID: attendance.PlayerID}
		s.attendance[key] = attendance
		order = append(order, attendance.PlayerID)
	}
	for _, entry := range record.Behavior {
		key := sessionKey{sessionID: sessionID, playerID: entry.PlayerID}
		s.behavior[key] = entry
	}
	s.roster[sessionID] = order
	return nil
}

// GetSession fetches a session record by ID.
func (s *Store) GetSession(ctx context.Context, id string) (sessiondomain.Session, error) {
	if err := ctx.Err(); err != nil {
		return sessiondomain.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.sessionIdx[id]
	if !ok {
		return sessiondomain.Session{}, storage.ErrNotFound
	}
	return s.sessions[idx], nil
}

// ListSessionsByTeam returns the sessions recorded for a team, in insertion
// order.
func (s *Store) ListSessionsByTeam(ctx context.Context, teamID string) ([]sessiondomain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []sessiondomain.Session
	for _, session := range s.sessions {
		if session.TeamID == teamID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

// UpdateSessionNotes replaces the notes of a recorded session. Notes is the
// only session field that stays mutable after the record is committed.
func (s *Store) UpdateSessionNotes(ctx context.Context, id, notes string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.sessionIdx[id]
	if !ok {
		return storage.ErrNotFound
	}
	s.sessions[idx].Notes = notes
	return nil
}

// GetAttendance fetches one attendance row by its (session, player) key.
func (s *Store) GetAttendance(ctx context.Context, sessionID, playerID string) (sessiondomain.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return sessiondomain.Attendance{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	attendance, ok := s.attendance[sessionKey{sessionID: sessionID, playerID: playerID}]
	if !ok {
		return sessiondomain.Attendance{}, storage.ErrNotFound
	}
	return attendance, nil
}

// ListAttendanceBySession returns a session's attendance rows in roster
// order.
func (s *Store) ListAttendanceBySession(ctx context.Context, sessionID string) ([]sessiondomain.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.roster[sessionID]
	if !ok {
		return nil, nil
	}
	rows := make([]sessiondomain.Attendance, 0, len(order))
	for _, playerID := range order {
		if attendance, ok := s.attendance[sessionKey{sessionID: sessionID, playerID: playerID}]; ok {
			rows = append(rows, attendance)
		}
	}
	return rows, nil
}

// GetBehaviorEntry fetches one behavior row by its (session, player) key.
func (s *Store) GetBehaviorEntry(ctx context.Context, sessionID, playerID string) (sessiondomain.BehaviorEntry, error) {
	if err := ctx.Err(); err != nil {
		return sessiondomain.BehaviorEntry{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.behavior[sessionKey{sessionID: sessionID, playerID: playerID}]
	if !ok {
		return sessiondomain.BehaviorEntry{}, storage.ErrNotFound
	}
	return entry, nil
}

// ListBehaviorBySession returns a session's behavior rows in roster order.
func (s *Store) ListBehaviorBySession(ctx context.Context, sessionID string) ([]sessiondomain.BehaviorEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.roster[sessionID]
	if !ok {
		return nil, nil
	}
	rows := make([]sessiondomain.BehaviorEntry, 0, len(order))
	for _, playerID := range order {
		if entry, ok := s.behavior[sessionKey{sessionID: sessionID, playerID: playerID}]; ok {
			rows = append(rows, entry)
		}
	}
	return rows, nil
}

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.telemetry = append(s.telemetry, event)
	return nil
}

// TelemetryEvents returns the recorded operational events in order.
func (s *Store) TelemetryEvents(ctx context.Context) ([]storage.TelemetryEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]storage.TelemetryEvent, len(s.telemetry))
	copy(events, s.telemetry)
	return events, nil
}

// ExportSnapshot returns a full copy of the entity store for the external
// persistence collaborator.
func (s *Store) ExportSnapshot(ctx context.Context) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := storage.Snapshot{
		Teams:   make([]clubdomain.Team, len(s.teams)),
		Players: make([]clubdomain.Player, len(s.players)),
		Drills:  make([]catalogdomain.Drill, len(s.drills)),
		Plans:   make([]catalogdomain.TrainingPlan, len(s.plans)),
	}
	copy(snapshot.Teams, s.teams)
	copy(snapshot.Players, s.players)
	copy(snapshot.Drills, s.drills)
	copy(snapshot.Plans, s.plans)

	for _, session := range s.sessions {
		record := storage.SessionRecord{Session: session}
		for _, playerID := range s.roster[session.ID] {
			key := sessionKey{sessionID: session.ID, playerID: playerID}
			if attendance, ok := s.attendance[key]; ok {
				record.Attendance = append(record.Attendance, attendance)
			}
			if entry, ok := s.behavior[key]; ok {
				record.Behavior = append(record.Behavior, entry)
			}
		}
		snapshot.Sessions = append(snapshot.Sessions, record)
	}
	return snapshot, nil
}

// ImportSnapshot replaces the store contents with the snapshot.
func (s *Store) ImportSnapshot(ctx context.Context, snapshot storage.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fresh := NewStore()
	for _, team := range snapshot.Teams {
		if err := fresh.PutTeam(ctx, team); err != nil {
			return fmt.Errorf("import team: %w", err)
		}
	}
	for _, player := range snapshot.Players {
		if err := fresh.PutPlayer(ctx, player); err != nil {
			return fmt.Errorf("import player: %w", err)
		}
	}
	for _, drill := range snapshot.Drills {
		if err := fresh.PutDrill(ctx, drill); err != nil {
			return fmt.Errorf("import drill: %w", err)
		}
	}
	for _, plan := range snapshot.Plans {
		if err := fresh.PutPlan(ctx, plan); err != nil {
			return fmt.Errorf("import plan: %w", err)
		}
	}
	for _, record := range snapshot.Sessions {
		if err := fresh.AppendSessionRecord(ctx, record); err != nil {
			return fmt.Errorf("import session record: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = fresh.teams
	s.teamIdx = fresh.teamIdx
	s.players = fresh.players
	s.playerIdx = fresh.playerIdx
	s.drills = fresh.drills
	s.drillIdx = fresh.drillIdx
	s.plans = fresh.plans
	s.planIdx = fresh.planIdx
	s.sessions = fresh.sessions
	s.sessionIdx = fresh.sessionIdx
	s.attendance = fresh.attendance
	s.behavior = fresh.behavior
	s.roster = fresh.roster
	return nil
}
