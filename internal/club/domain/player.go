package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/touchline/internal/id"
)

var (
	// ErrEmptyPlayerName indicates a missing player name.
	ErrEmptyPlayerName = errors.New("player name is required")
	// ErrEmptyPlayerTeamID indicates a missing team reference.
	ErrEmptyPlayerTeamID = errors.New("player team id is required")
	// ErrEmptyDateOfBirth indicates a missing date of birth.
	ErrEmptyDateOfBirth = errors.New("date of birth is required")
)

// Player represents one child on a team's roster. TeamID is a weak
// reference; DateOfBirth is an ISO calendar date (YYYY-MM-DD).
type Player struct {
	ID          string
	TeamID      string
	Name        string
	DateOfBirth string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePlayerInput describes the metadata needed to create a player.
type CreatePlayerInput struct {
	TeamID      string
	Name        string
	DateOfBirth string
	Notes       string
}

// CreatePlayer creates a new player with a generated ID and timestamps.
func CreatePlayer(input CreatePlayerInput, now func() time.Time, idGenerator func() (string, error)) (Player, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreatePlayerInput(input)
	if err != nil {
		return Player{}, err
	}

	playerID, err := idGenerator()
	if err != nil {
		return Player{}, fmt.Errorf("generate player id: %w", err)
	}

	createdAt := now().UTC()
	return Player{
		ID:          playerID,
		TeamID:      normalized.TeamID,
		Name:        normalized.Name,
		DateOfBirth: normalized.DateOfBirth,
		Notes:       normalized.Notes,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreatePlayerInput trims and validates player input metadata.
func NormalizeCreatePlayerInput(input CreatePlayerInput) (CreatePlayerInput, error) {
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.TeamID == "" {
		return CreatePlayerInput{}, ErrEmptyPlayerTeamID
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreatePlayerInput{}, ErrEmptyPlayerName
	}
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	if input.DateOfBirth == "" {
		return CreatePlayerInput{}, ErrEmptyDateOfBirth
	}
	input.Notes = strings.TrimSpace(input.Notes)
	return input, nil
}

// UpdatePlayer applies new metadata to an existing player, keeping its
// identity and team membership history intact.
func UpdatePlayer(player Player, input CreatePlayerInput, now func() time.Time) (Player, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreatePlayerInput(input)
	if err != nil {
		return Player{}, err
	}

	player.TeamID = normalized.TeamID
	player.Name = normalized.Name
	player.DateOfBirth = normalized.DateOfBirth
	player.Notes = normalized.Notes
	player.UpdatedAt = now().UTC()
	return player, nil
}
