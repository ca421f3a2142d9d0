package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/touchline/internal/club/domain"
	"github.com/louisbranch/touchline/internal/storage"
	"github.com/louisbranch/touchline/internal/storage/memory"
)

func newTestClub(t *testing.T) (*Club, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	club := NewClub(store, store)
	club.clock = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	sequence := 0
	club.idGenerator = func() (string, error) {
		sequence++
		return []string{"team-a", "player-a", "player-b"}[sequence-1], nil
	}
	return club, store
}

func TestCreateTeamValidates(t *testing.T) {
	club, _ := newTestClub(t)

	if _, err := club.CreateTeam(context.Background(), domain.CreateTeamInput{
		AgeGroup: "U6", Coach: "Coach Bob",
	}); !errors.Is(err, domain.ErrEmptyTeamName) {
		t.Fatalf("expected ErrEmptyTeamName, got %v", err)
	}

	team, err := club.CreateTeam(context.Background(), domain.CreateTeamInput{
		Name: "  U6 Lions  ", AgeGroup: "U5-U6", Coach: "Coach Bob",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if team.Name != "U6 Lions" {
		t.Fatalf("expected trimmed name, got %q", team.Name)
	}
	if team.ID != "team-a" {
		t.Fatalf("expected generated id, got %q", team.ID)
	}
}

func TestCreatePlayerRequiresKnownTeam(t *testing.T) {
	club, _ := newTestClub(t)

	if _, err := club.CreatePlayer(context.Background(), domain.CreatePlayerInput{
		TeamID: "missing", Name: "Sam Jones", DateOfBirth: "2018-05-10",
	}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTeamKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	club, _ := newTestClub(t)

	team, err := club.CreateTeam(ctx, domain.CreateTeamInput{
		Name: "U6 Lions", AgeGroup: "U5-U6", Coach: "Coach Bob",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	updated, err := club.UpdateTeam(ctx, team.ID, domain.CreateTeamInput{
		Name: "U6 Lions", AgeGroup: "U5-U6", Coach: "Coach Alice",
	})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}
	if updated.ID != team.ID {
		t.Fatalf("expected id %q to be kept, got %q", team.ID, updated.ID)
	}
	if updated.Coach != "Coach Alice" {
		t.Fatalf("expected new coach, got %q", updated.Coach)
	}
	if !updated.CreatedAt.Equal(team.CreatedAt) {
		t.Fatal("expected creation time to be kept")
	}
}

func TestRemovePlayer(t *testing.T) {
	ctx := context.Background()
	club, store := newTestClub(t)

	team, err := club.CreateTeam(ctx, domain.CreateTeamInput{
		Name: "U6 Lions", AgeGroup: "U5-U6", Coach: "Coach Bob",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	player, err := club.CreatePlayer(ctx, domain.CreatePlayerInput{
		TeamID: team.ID, Name: "Sam Jones", DateOfBirth: "2018-05-10",
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	if err := club.RemovePlayer(ctx, player.ID); err != nil {
		t.Fatalf("remove player: %v", err)
	}
	if _, err := store.GetPlayer(ctx, player.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}
