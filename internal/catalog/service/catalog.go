// Package service exposes the drill catalog and training-plan library.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/touchline/internal/catalog/domain"
	"github.com/louisbranch/touchline/internal/id"
	"github.com/louisbranch/touchline/internal/storage"
)

// Catalog manages drills and training plans.
type Catalog struct {
	drills      storage.DrillStore
	plans       storage.PlanStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewCatalog creates a catalog service with default dependencies.
func NewCatalog(drills storage.DrillStore, plans storage.PlanStore) *Catalog {
	return &Catalog{
		drills:      drills,
		plans:       plans,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// CreateDrill validates and persists a new drill.
func (c *Catalog) CreateDrill(ctx context.Context, input domain.CreateDrillInput) (domain.Drill, error) {
	drill, err := domain.CreateDrill(input, c.clock, c.idGenerator)
	if err != nil {
		return domain.Drill{}, err
	}
	if err := c.drills.PutDrill(ctx, drill); err != nil {
		return domain.Drill{}, fmt.Errorf("persist drill: %w", err)
	}
	return drill, nil
}

// GetDrill returns one drill by ID.
func (c *Catalog) GetDrill(ctx context.Context, drillID string) (domain.Drill, error) {
	return c.drills.GetDrill(ctx, drillID)
}

// ListDrills returns the catalog, optionally narrowed by a filter. A zero
// filter returns every drill in catalog order.
func (c *Catalog) ListDrills(ctx context.Context, filter domain.Filter) ([]domain.Drill, error) {
	drills, err := c.drills.ListDrills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drills: %w", err)
	}
	return filter.Apply(drills), nil
}

// CreatePlan validates and persists a new training plan. Every referenced
// drill must exist in the catalog.
func (c *Catalog) CreatePlan(ctx context.Context, input domain.CreatePlanInput) (domain.TrainingPlan, error) {
	for _, planDrill := range input.Drills {
		if _, err := c.drills.GetDrill(ctx, planDrill.DrillID); err != nil {
			return domain.TrainingPlan{}, fmt.Errorf("load drill %s: %w", planDrill.DrillID, err)
		}
	}
	plan, err := domain.CreatePlan(input, c.clock, c.idGenerator)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	if err := c.plans.PutPlan(ctx, plan); err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("persist plan: %w", err)
	}
	return plan, nil
}

// UpdatePlan applies new metadata and drills to an existing plan.
func (c *Catalog) UpdatePlan(ctx context.Context, planID string, input domain.CreatePlanInput) (domain.TrainingPlan, error) {
	plan, err := c.plans.GetPlan(ctx, planID)
	if err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("load plan: %w", err)
	}
	for _, planDrill := range input.Drills {
		if _, err := c.drills.GetDrill(ctx, planDrill.DrillID); err != nil {
			return domain.TrainingPlan{}, fmt.Errorf("load drill %s: %w", planDrill.DrillID, err)
		}
	}
	updated, err := domain.UpdatePlan(plan, input, c.clock)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	if err := c.plans.PutPlan(ctx, updated); err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("persist plan: %w", err)
	}
	return updated, nil
}

// GetPlan returns one training plan by ID.
func (c *Catalog) GetPlan(ctx context.Context, planID string) (domain.TrainingPlan, error) {
	return c.plans.GetPlan(ctx, planID)
}

// ListPlans returns every training plan.
func (c *Catalog) ListPlans(ctx context.Context) ([]domain.TrainingPlan, error) {
	return c.plans.ListPlans(ctx)
}
