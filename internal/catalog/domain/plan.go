package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/touchline/internal/id"
)

var (
	// ErrEmptyPlanName indicates a missing plan name.
	ErrEmptyPlanName = errors.New("plan name is required")
	// ErrEmptyPlanTheme indicates a missing plan theme.
	ErrEmptyPlanTheme = errors.New("plan theme is required")
	// ErrEmptyPlanDrills indicates a plan without drills.
	ErrEmptyPlanDrills = errors.New("plan requires at least one drill")
	// ErrEmptyPlanDrillID indicates a plan entry without a drill reference.
	ErrEmptyPlanDrillID = errors.New("plan drill id is required")
)

// PlanDrill is an ordered association between a plan and a drill. Duration
// may diverge from the drill's own default; DrillID is a weak reference.
type PlanDrill struct {
	DrillID  string
	Duration int // minutes
}

// TrainingPlan represents an ordered sequence of drills played back during
// a session.
type TrainingPlan struct {
	ID        string
	Name      string
	Theme     string
	Drills    []PlanDrill
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePlanInput describes the metadata needed to create a training plan.
type CreatePlanInput struct {
	Name   string
	Theme  string
	Drills []PlanDrill
}

// CreatePlan creates a new training plan with a generated ID and timestamps.
func CreatePlan(input CreatePlanInput, now func() time.Time, idGenerator func() (string, error)) (TrainingPlan, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreatePlanInput(input)
	if err != nil {
		return TrainingPlan{}, err
	}

	planID, err := idGenerator()
	if err != nil {
		return TrainingPlan{}, fmt.Errorf("generate plan id: %w", err)
	}

	createdAt := now().UTC()
	return TrainingPlan{
		ID:        planID,
		Name:      normalized.Name,
		Theme:     normalized.Theme,
		Drills:    normalized.Drills,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreatePlanInput trims and validates plan input metadata. Drill
// order is preserved; it is the playback order.
func NormalizeCreatePlanInput(input CreatePlanInput) (CreatePlanInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreatePlanInput{}, ErrEmptyPlanName
	}
	input.Theme = strings.TrimSpace(input.Theme)
	if input.Theme == "" {
		return CreatePlanInput{}, ErrEmptyPlanTheme
	}
	if len(input.Drills) == 0 {
		return CreatePlanInput{}, ErrEmptyPlanDrills
	}
	drills := make([]PlanDrill, 0, len(input.Drills))
	for _, entry := range input.Drills {
		entry.DrillID = strings.TrimSpace(entry.DrillID)
		if entry.DrillID == "" {
			return CreatePlanInput{}, ErrEmptyPlanDrillID
		}
		if entry.Duration <= 0 {
			return CreatePlanInput{}, ErrInvalidDuration
		}
		drills = append(drills, entry)
	}
	input.Drills = drills
	return input, nil
}

// UpdatePlan applies new metadata to an existing plan, keeping its identity.
func UpdatePlan(plan TrainingPlan, input CreatePlanInput, now func() time.Time) (TrainingPlan, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreatePlanInput(input)
	if err != nil {
		return TrainingPlan{}, err
	}

	plan.Name = normalized.Name
	plan.Theme = normalized.Theme
	plan.Drills = normalized.Drills
	plan.UpdatedAt = now().UTC()
	return plan, nil
}
