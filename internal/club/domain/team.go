package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/touchline/internal/id"
)

var (
	// ErrEmptyTeamName indicates a missing team name.
	ErrEmptyTeamName = errors.New("team name is required")
	// ErrEmptyAgeGroup indicates a missing age group.
	ErrEmptyAgeGroup = errors.New("age group is required")
	// ErrEmptyCoach indicates a missing coach name.
	ErrEmptyCoach = errors.New("coach name is required")
)

// Team represents one roster of players coached together.
type Team struct {
	ID        string
	Name      string
	AgeGroup  string
	Coach     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateTeamInput describes the metadata needed to create a team.
type CreateTeamInput struct {
	Name     string
	AgeGroup string
	Coach    string
}

// CreateTeam creates a new team with a generated ID and timestamps.
func CreateTeam(input CreateTeamInput, now func() time.Time, idGenerator func() (string, error)) (Team, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateTeamInput(input)
	if err != nil {
		return Team{}, err
	}

	teamID, err := idGenerator()
	if err != nil {
		return Team{}, fmt.Errorf("generate team id: %w", err)
	}

	createdAt := now().UTC()
	return Team{
		ID:        teamID,
		Name:      normalized.Name,
		AgeGroup:  normalized.AgeGroup,
		Coach:     normalized.Coach,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateTeamInput trims and validates team input metadata.
func NormalizeCreateTeamInput(input CreateTeamInput) (CreateTeamInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateTeamInput{}, ErrEmptyTeamName
	}
	input.AgeGroup = strings.TrimSpace(input.AgeGroup)
	if input.AgeGroup == "" {
		return CreateTeamInput{}, ErrEmptyAgeGroup
	}
	input.Coach = strings.TrimSpace(input.Coach)
	if input.Coach == "" {
		return CreateTeamInput{}, ErrEmptyCoach
	}
	return input, nil
}

// UpdateTeam applies new metadata to an existing team, keeping its identity.
// Callers choose create versus update explicitly; there is no dispatch on
// the presence of an ID.
func UpdateTeam(team Team, input CreateTeamInput, now func() time.Time) (Team, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreateTeamInput(input)
	if err != nil {
		return Team{}, err
	}

	team.Name = normalized.Name
	team.AgeGroup = normalized.AgeGroup
	team.Coach = normalized.Coach
	team.UpdatedAt = now().UTC()
	return team, nil
}
