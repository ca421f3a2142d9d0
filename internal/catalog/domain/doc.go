// Package domain defines the reusable drill and training-plan catalog.
//
// A Drill is an add-or-replace record: its identity is immutable and there
// is no in-place edit. A TrainingPlan is an ordered list of PlanDrill
// entries; the order is playback order during a session, and each entry may
// override the drill's default duration. Displays must prefer the PlanDrill
// duration over the drill's own.
package domain
