// Package service exposes team and player management on top of the
// entity store.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/touchline/internal/club/domain"
	"github.com/louisbranch/touchline/internal/id"
	"github.com/louisbranch/touchline/internal/storage"
)

// Club manages teams and their rosters.
type Club struct {
	teams       storage.TeamStore
	players     storage.PlayerStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewClub creates a club service with default dependencies.
func NewClub(teams storage.TeamStore, players storage.PlayerStore) *Club {
	return &Club{
		teams:       teams,
		players:     players,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// CreateTeam validates and persists a new team.
func (c *Club) CreateTeam(ctx context.Context, input domain.CreateTeamInput) (domain.Team, error) {
	team, err := domain.CreateTeam(input, c.clock, c.idGenerator)
	if err != nil {
		return domain.Team{}, err
	}
	if err := c.teams.PutTeam(ctx, team); err != nil {
		return domain.Team{}, fmt.Errorf("persist team: %w", err)
	}
	return team, nil
}

// UpdateTeam applies new metadata to an existing team.
func (c *Club) UpdateTeam(ctx context.Context, teamID string, input domain.CreateTeamInput) (domain.Team, error) {
	team, err := c.teams.GetTeam(ctx, teamID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("load team: %w", err)
	}
	updated, err := domain.UpdateTeam(team, input, c.clock)
	if err != nil {
		return domain.Team{}, err
	}
	if err := c.teams.PutTeam(ctx, updated); err != nil {
		return domain.Team{}, fmt.Errorf("persist team: %w", err)
	}
	return updated, nil
}

// GetTeam returns one team by ID.
func (c *Club) GetTeam(ctx context.Context, teamID string) (domain.Team, error) {
	return c.teams.GetTeam(ctx, teamID)
}

// ListTeams returns every team.
func (c *Club) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return c.teams.ListTeams(ctx)
}

// CreatePlayer validates and persists a new player.
func (c *Club) CreatePlayer(ctx context.Context, input domain.CreatePlayerInput) (domain.Player, error) {
	if _, err := c.teams.GetTeam(ctx, input.TeamID); err != nil {
		return domain.Player{}, fmt.Errorf("load team: %w", err)
	}
	player, err := domain.CreatePlayer(input, c.clock, c.idGenerator)
	if err != nil {
		return domain.Player{}, err
	}
	if err := c.players.PutPlayer(ctx, player); err != nil {
		return domain.Player{}, fmt.Errorf("persist player: %w", err)
	}
	return player, nil
}

// UpdatePlayer applies new metadata to an existing player.
func (c *Club) UpdatePlayer(ctx context.Context, playerID string, input domain.CreatePlayerInput) (domain.Player, error) {
	player, err := c.players.GetPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, fmt.Errorf("load player: %w", err)
	}
	updated, err := domain.UpdatePlayer(player, input, c.clock)
	if err != nil {
		return domain.Player{}, err
	}
	if err := c.players.PutPlayer(ctx, updated); err != nil {
		return domain.Player{}, fmt.Errorf("persist player: %w", err)
	}
	return updated, nil
}

// RemovePlayer deletes a player from the roster. Recorded session history
// keeps its attendance and behavior rows.
func (c *Club) RemovePlayer(ctx context.Context, playerID string) error {
	return c.players.DeletePlayer(ctx, playerID)
}

// ListPlayers returns the roster of one team.
func (c *Club) ListPlayers(ctx context.Context, teamID string) ([]domain.Player, error) {
	return c.players.ListPlayersByTeam(ctx, teamID)
}
