// Package storage defines the entity-store interfaces for the coaching
// workflow.
//
// The store is the single source of truth: teams, players, drills, training
// plans, and finished session records all live behind these interfaces.
// Implementations can be found in subpackages: memory holds the working
// in-process store, sqlite is the external snapshot collaborator.
//
// # Error Types
//
//   - ErrNotFound: Indicates a requested record is missing. Lookup misses
//     are expected under the weak-reference data model and callers render
//     or skip gracefully instead of failing.
package storage
