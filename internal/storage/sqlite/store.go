// Package sqlite persists full snapshots of the in-memory entity store.
// It is the external collaborator on the process boundary: the workflow
// itself always runs against memory, and this store only loads a snapshot
// at startup and saves one on demand.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	clubdomain "github.com/louisbranch/touchline/internal/club/domain"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
	"github.com/louisbranch/touchline/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists entity snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite snapshot store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSnapshot replaces the stored snapshot with the given one in a single
// transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot storage.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{
		"behavior_entries", "attendance", "sessions",
		"plan_drills", "training_plans", "drills", "players", "teams",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, team := range snapshot.Teams {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO teams (id, name, age_group, coach, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			team.ID, team.Name, team.AgeGroup, team.Coach,
			toMillis(team.CreatedAt), toMillis(team.UpdatedAt),
		); err != nil {
			return fmt.Errorf("save team %s: %w", team.ID, err)
		}
	}

	for position, player := range snapshot.Players {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO players (id, team_id, name, date_of_birth, notes, position, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			player.ID, player.TeamID, player.Name, player.DateOfBirth, player.Notes,
			position, toMillis(player.CreatedAt), toMillis(player.UpdatedAt),
		); err != nil {
			return fmt.Errorf("save player %s: %w", player.ID, err)
		}
	}

	for position, drill := range snapshot.Drills {
		ageGroups, err := encodeJSONList(drill.AgeGroups)
		if err != nil {
			return fmt.Errorf("encode drill %s age groups: %w", drill.ID, err)
		}
		equipment, err := encodeJSONList(drill.Equipment)
		if err != nil {
			return fmt.Errorf("encode drill %s equipment: %w", drill.ID, err)
		}
		tags, err := encodeJSONList(drill.Tags)
		if err != nil {
			return fmt.Errorf("encode drill %s tags: %w", drill.ID, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO drills (
			   id, name, age_groups, category, description, duration,
			   equipment, tags, video_url, setup, instructions,
			   position, created_at, updated_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			drill.ID, drill.Name, ageGroups, string(drill.Category), drill.Description,
			drill.Duration, equipment, tags, drill.VideoURL, drill.Setup,
			drill.Instructions, position, toMillis(drill.CreatedAt), toMillis(drill.UpdatedAt),
		); err != nil {
			return fmt.Errorf("save drill %s: %w", drill.ID, err)
		}
	}

	for position, plan := range snapshot.Plans {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO training_plans (id, name, theme, position, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			plan.ID, plan.Name, plan.Theme, position,
			toMillis(plan.CreatedAt), toMillis(plan.UpdatedAt),
		); err != nil {
			return fmt.Errorf("save plan %s: %w", plan.ID, err)
		}
		for drillPosition, planDrill := range plan.Drills {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO plan_drills (plan_id, position, drill_id, duration)
				 VALUES (?, ?, ?, ?)`,
				plan.ID, drillPosition, planDrill.DrillID, planDrill.Duration,
			); err != nil {
				return fmt.Errorf("save plan %s drill %s: %w", plan.ID, planDrill.DrillID, err)
			}
		}
	}

	for position, record := range snapshot.Sessions {
		session := record.Session
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO sessions (id, team_id, training_plan_id, date_time, type, focus, notes, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, session.TeamID, session.TrainingPlanID,
			toMillis(session.DateTime), string(session.Type), session.Focus,
			session.Notes, position,
		); err != nil {
			return fmt.Errorf("save session %s: %w", session.ID, err)
		}
		for rosterPosition, attendance := range record.Attendance {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO attendance (session_id, player_id, present, position)
				 VALUES (?, ?, ?, ?)`,
				attendance.SessionID, attendance.PlayerID, attendance.Present, rosterPosition,
			); err != nil {
				return fmt.Errorf("save session %s attendance: %w", session.ID, err)
			}
		}
		for _, entry := range record.Behavior {
			tags, err := encodeJSONList(entry.Tags)
			if err != nil {
				return fmt.Errorf("encode session %s behavior tags: %w", session.ID, err)
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO behavior_entries (session_id, player_id, status, tags, note)
				 VALUES (?, ?, ?, ?, ?)`,
				entry.SessionID, entry.PlayerID, string(entry.Status), tags, entry.Note,
			); err != nil {
				return fmt.Errorf("save session %s behavior: %w", session.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the full stored snapshot. An empty database yields an
// empty snapshot, not an error.
func (s *Store) LoadSnapshot(ctx context.Context) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Snapshot{}, fmt.Errorf("storage is not configured")
	}

	var snapshot storage.Snapshot

	teamRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, age_group, coach, created_at, updated_at
		   FROM teams ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("load teams: %w", err)
	}
	defer teamRows.Close()
	for teamRows.Next() {
		var team clubdomain.Team
		var createdAt, updatedAt int64
		if err := teamRows.Scan(&team.ID, &team.Name, &team.AgeGroup, &team.Coach, &createdAt, &updatedAt); err != nil {
			return storage.Snapshot{}, fmt.Errorf("load teams: %w", err)
		}
		team.CreatedAt = fromMillis(createdAt)
		team.UpdatedAt = fromMillis(updatedAt)
		snapshot.Teams = append(snapshot.Teams, team)
	}
	if err := teamRows.Err(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("load teams: %w", err)
	}

	playerRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, team_id, name, date_of_birth, notes, created_at, updated_at
		   FROM players ORDER BY position ASC`,
	)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("load players: %w", err)
	}
	defer playerRows.Close()
	for playerRows.Next() {
		var player clubdomain.Player
		var createdAt, updatedAt int64
		if err := playerRows.Scan(&player.ID, &player.TeamID, &player.Name, &player.DateOfBirth, &player.Notes, &createdAt, &updatedAt); err != nil {
			return storage.Snapshot{}, fmt.Errorf("load players: %w", err)
		}
		player.CreatedAt = fromMillis(createdAt)
		player.UpdatedAt = fromMillis(updatedAt)
		snapshot.Players = append(snapshot.Players, player)
	}
	if err := playerRows.Err(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("load players: %w", err)
	}

	drillRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, age_groups, category, description, duration,
		        equipment, tags, video_url, setup, instructions,
		        created_at, updated_at
		   FROM drills ORDER BY position ASC`,
	)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("load drills: %w", err)
	}
	defer drillRows.Close()
	for drillRows.Next() {
		var drill catalogdomain.Drill
		var ageGroups, category, equipment, tags string
		var createdAt, updatedAt int64
		if err := drillRows.Scan(
			&drill.ID, &drill.Name, &ageGroups, &category, &drill.Description,
			&drill.Duration, &equipment, &tags, &drill.VideoURL, &drill.Setup,
			&drill.Instructions, &createdAt, &updatedAt,
		); err != nil {
			return storage.Snapshot{}, fmt.Errorf("load drills: %w", err)
		}
		drill.Category = catalogdomain.DrillCategory(category)
		if err := decodeJSONList(ageGroups, &drill.AgeGroups); err != nil {
			return storage.Snapshot{}, fmt.Errorf("decode drill %s age groups: %w", drill.ID, err)
		}
		if err := decodeJSONList(equipment, &drill.Equipment); err != nil {
			return storage.Snapshot{}, fmt.Errorf("decode drill %s equipment: %w", drill.ID, err)
		}
		if err := decodeJSONList(tags, &drill.Tags); err != nil {
			return storage.Snapshot{}, fmt.Errorf("decode drill %s tags: %w", drill.ID, err)
		}
		drill.CreatedAt = fromMillis(createdAt)
		drill.UpdatedAt = fromMillis(updatedAt)
		snapshot.Drills = append(snapshot.Drills, drill)
	}
	if err := drillRows.Err(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("load drills: %w", err)
	}

	plans, err := s.loadPlans(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	snapshot.Plans = plans

	sessions, err := s.loadSessionRecords(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	snapshot.Sessions = sessions

	return snapshot, nil
}

func (s *Store) loadPlans(ctx context.Context) ([]catalogdomain.TrainingPlan, error) {
	planRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, theme, created_at, updated_at
		   FROM training_plans ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	defer planRows.Close()

	var plans []catalogdomain.TrainingPlan
	for planRows.Next() {
		var plan catalogdomain.TrainingPlan
		var createdAt, updatedAt int64
		if err := planRows.Scan(&plan.ID, &plan.Name, &plan.Theme, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("load plans: %w", err)
		}
		plan.CreatedAt = fromMillis(createdAt)
		plan.UpdatedAt = fromMillis(updatedAt)
		plans = append(plans, plan)
	}
	if err := planRows.Err(); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}

	for i := range plans {
		drillRows, err := s.sqlDB.QueryContext(
			ctx,
			`SELECT drill_id, duration FROM plan_drills
			  WHERE plan_id = ? ORDER BY position ASC`,
			plans[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("load plan %s drills: %w", plans[i].ID, err)
		}
		for drillRows.Next() {
			var planDrill catalogdomain.PlanDrill
			if err := drillRows.Scan(&planDrill.DrillID, &planDrill.Duration); err != nil {
				drillRows.Close()
				return nil, fmt.Errorf("load plan %s drills: %w", plans[i].ID, err)
			}
			plans[i].Drills = append(plans[i].Drills, planDrill)
		}
		if err := drillRows.Err(); err != nil {
			drillRows.Close()
			return nil, fmt.Errorf("load plan %s drills: %w", plans[i].ID, err)
		}
		drillRows.Close()
	}
	return plans, nil
}

func (s *Store) loadSessionRecords(ctx context.Context) ([]storage.SessionRecord, error) {
	sessionRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, team_id, training_plan_id, date_time, type, focus, notes
		   FROM sessions ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer sessionRows.Close()

	var records []storage.SessionRecord
	for sessionRows.Next() {
		var session sessiondomain.Session
		var dateTime int64
		var sessionType string
		if err := sessionRows.Scan(
			&session.ID, &session.TeamID, &session.TrainingPlanID,
			&dateTime, &sessionType, &session.Focus, &session.Notes,
		); err != nil {
			return nil, fmt.Errorf("load sessions: %w", err)
		}
		session.DateTime = fromMillis(dateTime)
		session.Type = sessiondomain.SessionType(sessionType)
		records = append(records, storage.SessionRecord{Session: session})
	}
	if err := sessionRows.Err(); err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	for i := range records {
		sessionID := records[i].Session.ID
		rosterRows, err := s.sqlDB.QueryContext(
			ctx,
			`SELECT a.player_id, a.present, b.status, b.tags, b.note
			   FROM attendance a
			   JOIN behavior_entries b
			     ON b.session_id = a.session_id AND b.player_id = a.player_id
			  WHERE a.session_id = ?
			  ORDER BY a.position ASC`,
			sessionID,
		)
		if err != nil {
			return nil, fmt.Errorf("load session %s roster: %w", sessionID, err)
		}
		for rosterRows.Next() {
			var playerID, status, tags, note string
			var present bool
			if err := rosterRows.Scan(&playerID, &present, &status, &tags, &note); err != nil {
				rosterRows.Close()
				return nil, fmt.Errorf("load session %s roster: %w", sessionID, err)
			}
			entry := sessiondomain.BehaviorEntry{
				SessionID: sessionID,
				PlayerID:  playerID,
				Status:    sessiondomain.BehaviorStatus(status),
				Note:      note,
			}
			if err := decodeJSONList(tags, &entry.Tags); err != nil {
				rosterRows.Close()
				return nil, fmt.Errorf("decode session %s behavior tags: %w", sessionID, err)
			}
			records[i].Attendance = append(records[i].Attendance, sessiondomain.Attendance{
				SessionID: sessionID,
				PlayerID:  playerID,
				Present:   present,
			})
			records[i].Behavior = append(records[i].Behavior, entry)
		}
		if err := rosterRows.Err(); err != nil {
			rosterRows.Close()
			return nil, fmt.Errorf("load session %s roster: %w", sessionID, err)
		}
		rosterRows.Close()
	}
	return records, nil
}

func encodeJSONList[T ~string](values []T) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeJSONList[T ~string](data string, target *[]T) error {
	if strings.TrimSpace(data) == "" || data == "[]" {
		*target = nil
		return nil
	}
	return json.Unmarshal([]byte(data), target)
}
