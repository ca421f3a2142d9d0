package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/touchline/internal/id"
)

// DrillCategory classifies what a drill primarily develops.
type DrillCategory string

const (
	// DrillCategoryTechnical covers ball-skill and technique drills.
	DrillCategoryTechnical DrillCategory = "Technical"
	// DrillCategoryPhysical covers fitness and coordination drills.
	DrillCategoryPhysical DrillCategory = "Physical"
	// DrillCategorySocial covers listening, respect and values games.
	DrillCategorySocial DrillCategory = "Social/Values"
)

// IsValid reports whether the drill category is supported.
func (c DrillCategory) IsValid() bool {
	switch c {
	case DrillCategoryTechnical, DrillCategoryPhysical, DrillCategorySocial:
		return true
	default:
		return false
	}
}

var (
	// ErrEmptyDrillName indicates a missing drill name.
	ErrEmptyDrillName = errors.New("drill name is required")
	// ErrInvalidDrillCategory indicates a missing or invalid drill category.
	ErrInvalidDrillCategory = errors.New("drill category is required")
	// ErrInvalidDuration indicates a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be greater than zero")
)

// Drill represents one reusable exercise in the catalog.
type Drill struct {
	ID           string
	Name         string
	AgeGroups    []string
	Category     DrillCategory
	Description  string
	Duration     int // minutes
	Equipment    []string
	Tags         []string
	VideoURL     string
	Setup        string
	Instructions string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateDrillInput describes the metadata needed to create a drill.
type CreateDrillInput struct {
	Name         string
	AgeGroups    []string
	Category     DrillCategory
	Description  string
	Duration     int
	Equipment    []string
	Tags         []string
	VideoURL     string
	Setup        string
	Instructions string
}

// CreateDrill creates a new drill with a generated ID and timestamps.
func CreateDrill(input CreateDrillInput, now func() time.Time, idGenerator func() (string, error)) (Drill, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateDrillInput(input)
	if err != nil {
		return Drill{}, err
	}

	drillID, err := idGenerator()
	if err != nil {
		return Drill{}, fmt.Errorf("generate drill id: %w", err)
	}

	createdAt := now().UTC()
	return Drill{
		ID:           drillID,
		Name:         normalized.Name,
		AgeGroups:    normalized.AgeGroups,
		Category:     normalized.Category,
		Description:  normalized.Description,
		Duration:     normalized.Duration,
		Equipment:    normalized.Equipment,
		Tags:         normalized.Tags,
		VideoURL:     normalized.VideoURL,
		Setup:        normalized.Setup,
		Instructions: normalized.Instructions,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateDrillInput trims and validates drill input metadata.
func NormalizeCreateDrillInput(input CreateDrillInput) (CreateDrillInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateDrillInput{}, ErrEmptyDrillName
	}
	if !input.Category.IsValid() {
		return CreateDrillInput{}, ErrInvalidDrillCategory
	}
	if input.Duration <= 0 {
		return CreateDrillInput{}, ErrInvalidDuration
	}
	input.Description = strings.TrimSpace(input.Description)
	input.VideoURL = strings.TrimSpace(input.VideoURL)
	input.Setup = strings.TrimSpace(input.Setup)
	input.Instructions = strings.TrimSpace(input.Instructions)
	input.AgeGroups = trimAll(input.AgeGroups)
	input.Equipment = trimAll(input.Equipment)
	input.Tags = trimAll(input.Tags)
	return input, nil
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		trimmed = append(trimmed, value)
	}
	return trimmed
}
