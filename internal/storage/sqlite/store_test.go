package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	clubdomain "github.com/louisbranch/touchline/internal/club/domain"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "touchline.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected missing path to be rejected")
	}
}

func TestLoadSnapshotEmptyDatabase(t *testing.T) {
	store := openTestStore(t)

	snapshot, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(snapshot.Teams) != 0 || len(snapshot.Sessions) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}
}

func testSnapshot() storage.Snapshot {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return storage.Snapshot{
		Teams: []clubdomain.Team{
			{ID: "t1", Name: "U6 Lions", AgeGroup: "U6", Coach: "Coach Sam", CreatedAt: created, UpdatedAt: created},
			{ID: "t2", Name: "U8 Tigers", AgeGroup: "U8", Coach: "Coach Sam", CreatedAt: created.Add(time.Minute), UpdatedAt: created.Add(time.Minute)},
		},
		Players: []clubdomain.Player{
			{ID: "p1", TeamID: "t1", Name: "Alex", DateOfBirth: "2018-03-14", CreatedAt: created, UpdatedAt: created},
			{ID: "p2", TeamID: "t1", Name: "Bea", DateOfBirth: "2018-07-02", Notes: "left-footed", CreatedAt: created, UpdatedAt: created},
		},
		Drills: []catalogdomain.Drill{
			{
				ID: "d1", Name: "Dribbling Gates", Category: catalogdomain.DrillCategoryTechnical,
				AgeGroups: []string{"U6", "U8"}, Duration: 10,
				Equipment: []string{"cones", "balls"}, Tags: []string{"dribbling", "ball control"},
				CreatedAt: created, UpdatedAt: created,
			},
		},
		Plans: []catalogdomain.TrainingPlan{
			{
				ID: "tp1", Name: "Foundations", Theme: "Dribbling",
				Drills:    []catalogdomain.PlanDrill{{DrillID: "d1", Duration: 10}},
				CreatedAt: created, UpdatedAt: created,
			},
		},
		Sessions: []storage.SessionRecord{
			{
				Session: sessiondomain.Session{
					ID: "s1", TeamID: "t1", TrainingPlanID: "tp1",
					DateTime: time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC),
					Type:     sessiondomain.SessionTypeTraining,
					Focus:    "Dribbling",
					Notes:    "good first outing",
				},
				Attendance: []sessiondomain.Attendance{
					{SessionID: "s1", PlayerID: "p2", Present: true},
					{SessionID: "s1", PlayerID: "p1", Present: false},
				},
				Behavior: []sessiondomain.BehaviorEntry{
					{SessionID: "s1", PlayerID: "p2", Status: sessiondomain.BehaviorStatusYellow, Tags: []sessiondomain.BehaviorTag{sessiondomain.BehaviorTagEffort}, Note: "pushed through"},
					{SessionID: "s1", PlayerID: "p1", Status: sessiondomain.BehaviorStatusGreen},
				},
			},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	want := testSnapshot()

	if err := store.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}

	if len(got.Teams) != 2 || got.Teams[0].ID != "t1" || got.Teams[1].ID != "t2" {
		t.Fatalf("expected teams t1, t2; got %+v", got.Teams)
	}
	if got.Teams[0].Coach != "Coach Sam" {
		t.Fatalf("expected coach to round-trip, got %q", got.Teams[0].Coach)
	}
	if len(got.Players) != 2 || got.Players[1].Notes != "left-footed" {
		t.Fatalf("expected player notes to round-trip, got %+v", got.Players)
	}
	if len(got.Drills) != 1 {
		t.Fatalf("expected 1 drill, got %d", len(got.Drills))
	}
	drill := got.Drills[0]
	if drill.Category != catalogdomain.DrillCategoryTechnical {
		t.Fatalf("expected category to round-trip, got %q", drill.Category)
	}
	if len(drill.AgeGroups) != 2 || drill.AgeGroups[0] != "U6" {
		t.Fatalf("expected age groups to round-trip, got %+v", drill.AgeGroups)
	}
	if len(drill.Tags) != 2 || drill.Tags[1] != "ball control" {
		t.Fatalf("expected tags to round-trip, got %+v", drill.Tags)
	}
	if len(got.Plans) != 1 || len(got.Plans[0].Drills) != 1 || got.Plans[0].Drills[0].DrillID != "d1" {
		t.Fatalf("expected plan drills to round-trip, got %+v", got.Plans)
	}
	if len(got.Sessions) != 1 {
		t.Fatalf("expected 1 session record, got %d", len(got.Sessions))
	}
	record := got.Sessions[0]
	if !record.Session.DateTime.Equal(want.Sessions[0].Session.DateTime) {
		t.Fatalf("expected session time %v, got %v", want.Sessions[0].Session.DateTime, record.Session.DateTime)
	}
	if record.Session.Type != sessiondomain.SessionTypeTraining {
		t.Fatalf("expected session type to round-trip, got %q", record.Session.Type)
	}
	if len(record.Attendance) != 2 || record.Attendance[0].PlayerID != "p2" || record.Attendance[1].PlayerID != "p1" {
		t.Fatalf("expected roster order p2, p1; got %+v", record.Attendance)
	}
	if record.Attendance[1].Present {
		t.Fatal("expected p1 to be absent")
	}
	entry := record.Behavior[0]
	if entry.Status != sessiondomain.BehaviorStatusYellow || entry.Note != "pushed through" {
		t.Fatalf("expected behavior entry to round-trip, got %+v", entry)
	}
	if len(entry.Tags) != 1 || entry.Tags[0] != sessiondomain.BehaviorTagEffort {
		t.Fatalf("expected behavior tags to round-trip, got %+v", entry.Tags)
	}
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.SaveSnapshot(ctx, testSnapshot()); err != nil {
		t.Fatalf("save first snapshot: %v", err)
	}

	smaller := storage.Snapshot{
		Teams: []clubdomain.Team{{ID: "t9", Name: "U10 Hawks", AgeGroup: "U10", Coach: "Coach Ana"}},
	}
	if err := store.SaveSnapshot(ctx, smaller); err != nil {
		t.Fatalf("save second snapshot: %v", err)
	}

	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(got.Teams) != 1 || got.Teams[0].ID != "t9" {
		t.Fatalf("expected only t9 after replace, got %+v", got.Teams)
	}
	if len(got.Players) != 0 || len(got.Sessions) != 0 {
		t.Fatal("expected previous rows to be cleared")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchline.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	if err := first.SaveSnapshot(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close first: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load snapshot after reopen: %v", err)
	}
	if len(got.Teams) != 2 {
		t.Fatalf("expected snapshot to survive reopen, got %d teams", len(got.Teams))
	}
}
