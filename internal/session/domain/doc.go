// Package domain defines the entities recorded for one coaching session.
//
// A Session is created exactly once, when the coach starts tracking, and
// references its team and synthesized training plan through weak IDs. The
// Attendance and BehaviorEntry collections are a roster snapshot: one row
// per player on the team at session start, keyed by (SessionID, PlayerID),
// never re-synced if the roster changes later. After the session finishes
// the records are append-only history; Notes is the only Session field that
// stays mutable.
package domain
