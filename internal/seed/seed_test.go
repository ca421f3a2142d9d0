package seed

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/touchline/internal/storage/memory"
)

func TestSnapshotIsDeterministic(t *testing.T) {
	reference := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return reference }

	first := Snapshot(now)
	second := Snapshot(now)

	if len(first.Teams) != 2 || len(first.Players) != 5 || len(first.Drills) != 3 || len(first.Plans) != 2 {
		t.Fatalf("unexpected fixture shape: %d teams, %d players, %d drills, %d plans",
			len(first.Teams), len(first.Players), len(first.Drills), len(first.Plans))
	}
	if first.Teams[0].ID != second.Teams[0].ID || first.Players[4].ID != second.Players[4].ID {
		t.Fatal("expected fixed entity IDs across calls")
	}
}

func TestSnapshotSessionDatedOneWeekBack(t *testing.T) {
	reference := time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC)
	snapshot := Snapshot(func() time.Time { return reference })

	if len(snapshot.Sessions) != 1 {
		t.Fatalf("expected 1 seeded session, got %d", len(snapshot.Sessions))
	}
	record := snapshot.Sessions[0]
	want := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	if !record.Session.DateTime.Equal(want) {
		t.Fatalf("expected session dated %v, got %v", want, record.Session.DateTime)
	}
	if len(record.Attendance) != 3 || len(record.Behavior) != 3 {
		t.Fatalf("expected roster of 3, got %d attendance and %d behavior rows",
			len(record.Attendance), len(record.Behavior))
	}
	for _, attendance := range record.Attendance {
		if !attendance.Present {
			t.Fatalf("expected all seeded players present, %s is absent", attendance.PlayerID)
		}
	}
}

func TestSnapshotImportsCleanly(t *testing.T) {
	store := memory.NewStore()
	if err := store.ImportSnapshot(context.Background(), Snapshot(nil)); err != nil {
		t.Fatalf("import seed snapshot: %v", err)
	}

	teams, err := store.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 || teams[0].Name != "U6 Lions" {
		t.Fatalf("expected seeded teams, got %+v", teams)
	}

	players, err := store.ListPlayersByTeam(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players on t1, got %d", len(players))
	}
}
