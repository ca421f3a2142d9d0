// Package session serves as an umbrella for coaching session management,
// from setup through live tracking to the post-session summary.
//
// The package is organized into two primary subpackages:
//   - domain: Defines the session entity, attendance, and behavior tracking.
//   - service: Implements the staged workflow that runs a session.
package session
