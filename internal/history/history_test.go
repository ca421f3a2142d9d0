package history

import (
	"context"
	"testing"
	"time"

	clubdomain "github.com/louisbranch/touchline/internal/club/domain"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
	"github.com/louisbranch/touchline/internal/storage/memory"
)

func sessionAt(id string, dateTime time.Time) sessiondomain.Session {
	return sessiondomain.Session{
		ID:             id,
		TeamID:         "t1",
		TrainingPlanID: "tp1",
		DateTime:       dateTime,
		Type:           sessiondomain.SessionTypeTraining,
	}
}

func record(session sessiondomain.Session, rows ...sessiondomain.BehaviorEntry) storage.SessionRecord {
	rec := storage.SessionRecord{Session: session}
	for _, row := range rows {
		row.SessionID = session.ID
		present := row.Status != ""
		rec.Attendance = append(rec.Attendance, sessiondomain.Attendance{
			SessionID: session.ID,
			PlayerID:  row.PlayerID,
			Present:   present,
		})
		if row.Status == "" {
			row.Status = sessiondomain.BehaviorStatusGreen
		}
		rec.Behavior = append(rec.Behavior, row)
	}
	return rec
}

func seedHistory(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	if err := store.PutTeam(ctx, clubdomain.Team{ID: "t1", Name: "U6 Lions", AgeGroup: "U5-U6", Coach: "Coach Bob"}); err != nil {
		t.Fatalf("put team: %v", err)
	}

	records := []storage.SessionRecord{
		record(
			sessionAt("s1", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)),
			sessiondomain.BehaviorEntry{PlayerID: "p1", Status: sessiondomain.BehaviorStatusGreen},
			sessiondomain.BehaviorEntry{PlayerID: "p2", Status: sessiondomain.BehaviorStatusYellow},
		),
		record(
			sessionAt("s2", time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)),
			sessiondomain.BehaviorEntry{PlayerID: "p1", Status: sessiondomain.BehaviorStatusRed, Note: "rough day"},
			// Empty status marks p2 absent; the stored entry keeps green.
			sessiondomain.BehaviorEntry{PlayerID: "p2"},
		),
		record(
			sessionAt("s3", time.Date(2024, 2, 1, 17, 0, 0, 0, time.UTC)),
			sessiondomain.BehaviorEntry{PlayerID: "p1", Status: sessiondomain.BehaviorStatusGreen},
		),
	}
	for _, rec := range records {
		if err := store.AppendSessionRecord(ctx, rec); err != nil {
			t.Fatalf("append record %s: %v", rec.Session.ID, err)
		}
	}
	return store
}

func TestPlayerHistoryNewestFirst(t *testing.T) {
	store := seedHistory(t)
	service := NewService(store, store)

	entries, err := service.PlayerHistory(context.Background(), "t1", "p1")
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Session.ID != "s3" || entries[1].Session.ID != "s2" || entries[2].Session.ID != "s1" {
		t.Fatalf("expected newest-first order s3, s2, s1; got %s, %s, %s",
			entries[0].Session.ID, entries[1].Session.ID, entries[2].Session.ID)
	}
	if entries[1].Status != sessiondomain.BehaviorStatusRed || entries[1].Note != "rough day" {
		t.Fatalf("expected s2 entry details, got %+v", entries[1])
	}
}

func TestPlayerHistorySuppressesAbsentStatus(t *testing.T) {
	store := seedHistory(t)
	service := NewService(store, store)

	entries, err := service.PlayerHistory(context.Background(), "t1", "p2")
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	// All three team sessions appear even though p2 was not rostered
	// for s3; missing attendance reads the same as present=false.
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	unrostered := entries[0]
	if unrostered.Session.ID != "s3" || unrostered.Present {
		t.Fatalf("expected unrostered s3 entry listed as absent, got %+v", unrostered)
	}
	absent := entries[1]
	if absent.Session.ID != "s2" || absent.Present {
		t.Fatalf("expected absent s2 entry, got %+v", absent)
	}
	if absent.Status != "" || len(absent.Tags) != 0 {
		t.Fatalf("expected absent entry's status suppressed, got %+v", absent)
	}
	if unrostered.Status != "" || len(unrostered.Tags) != 0 {
		t.Fatalf("expected unrostered entry's status suppressed, got %+v", unrostered)
	}
}

func TestTeamHistoryInclusiveDateRange(t *testing.T) {
	store := seedHistory(t)
	service := NewService(store, store)

	// Only s2 falls inside the range; it sits late on Jan 15 but its
	// calendar date is within the window.
	report, err := service.TeamHistory(
		context.Background(),
		"t1",
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("team history: %v", err)
	}
	if len(report.Sessions) != 1 || report.Sessions[0].Session.ID != "s2" {
		t.Fatalf("expected only s2 in range, got %+v", report.Sessions)
	}
	// p2 was absent, so only p1's red counts.
	if report.RedCount != 1 || report.GreenCount != 0 || report.YellowCount != 0 {
		t.Fatalf("expected only one red, got %+v", report)
	}
	if report.Sessions[0].RedCount != 1 {
		t.Fatalf("expected s2 annotated with its red, got %+v", report.Sessions[0])
	}
}

func TestTeamHistoryBoundaryDaysIncluded(t *testing.T) {
	store := seedHistory(t)
	service := NewService(store, store)

	report, err := service.TeamHistory(
		context.Background(),
		"t1",
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("team history: %v", err)
	}
	// s1 is earlier on the from day and s3 later on the to day; date-only
	// comparison keeps both.
	if len(report.Sessions) != 3 {
		t.Fatalf("expected all 3 sessions in range, got %d", len(report.Sessions))
	}
	if report.Sessions[0].Session.ID != "s3" || report.Sessions[2].Session.ID != "s1" {
		t.Fatalf("expected newest-first sessions, got %+v", report.Sessions)
	}
	if report.GreenCount != 2 || report.YellowCount != 1 || report.RedCount != 1 {
		t.Fatalf("unexpected tallies %+v", report)
	}
	if report.Sessions[2].GreenCount != 1 || report.Sessions[2].YellowCount != 1 {
		t.Fatalf("expected s1 annotated with green and yellow, got %+v", report.Sessions[2])
	}
}

func TestTeamHistoryOpenBounds(t *testing.T) {
	store := seedHistory(t)
	service := NewService(store, store)

	report, err := service.TeamHistory(context.Background(), "t1", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("team history: %v", err)
	}
	if len(report.Sessions) != 3 {
		t.Fatalf("expected zero bounds to include everything, got %d sessions", len(report.Sessions))
	}
}

func TestCoachSessionsSplit(t *testing.T) {
	ctx := context.Background()
	store := seedHistory(t)

	if err := store.PutTeam(ctx, clubdomain.Team{ID: "t2", Name: "U8 Tigers", AgeGroup: "U7-U8", Coach: "Coach Alice"}); err != nil {
		t.Fatalf("put team: %v", err)
	}
	future := sessionAt("s4", time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC))
	if err := store.AppendSessionRecord(ctx, storage.SessionRecord{Session: future}); err != nil {
		t.Fatalf("append future session: %v", err)
	}

	service := NewService(store, store)
	service.clock = func() time.Time { return time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC) }

	schedule, err := service.CoachSessions(ctx, "Coach Bob")
	if err != nil {
		t.Fatalf("coach sessions: %v", err)
	}
	if len(schedule.Upcoming) != 1 || schedule.Upcoming[0].ID != "s4" {
		t.Fatalf("expected s4 upcoming, got %+v", schedule.Upcoming)
	}
	if len(schedule.Past) != 3 || schedule.Past[0].ID != "s3" {
		t.Fatalf("expected newest-first past starting at s3, got %+v", schedule.Past)
	}

	other, err := service.CoachSessions(ctx, "Coach Alice")
	if err != nil {
		t.Fatalf("coach sessions: %v", err)
	}
	if len(other.Upcoming) != 0 || len(other.Past) != 0 {
		t.Fatalf("expected no sessions for Coach Alice, got %+v", other)
	}
}
