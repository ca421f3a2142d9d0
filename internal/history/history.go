// Package history answers questions about recorded sessions: what one
// player did over time, how a team behaved over a date range, and what a
// coach has coming up or recently behind them.
package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
)

// Service reads recorded sessions. It never writes.
type Service struct {
	teams    storage.TeamStore
	sessions storage.SessionStore
	clock    func() time.Time
}

// NewService creates a history service with default dependencies.
func NewService(teams storage.TeamStore, sessions storage.SessionStore) *Service {
	return &Service{
		teams:    teams,
		sessions: sessions,
		clock:    time.Now,
	}
}

// PlayerEntry is one session in a player's history. Status and tags are
// suppressed when the player was absent.
type PlayerEntry struct {
	Session sessiondomain.Session
	Present bool
	Status  sessiondomain.BehaviorStatus
	Tags    []sessiondomain.BehaviorTag
	Note    string
}

// PlayerHistory returns every session of a team from one player's point
// of view, newest first. Sessions where the player was not rostered show
// as absent, the same as present=false. The player may have since been
// deleted; history is keyed by IDs alone.
func (s *Service) PlayerHistory(ctx context.Context, teamID, playerID string) ([]PlayerEntry, error) {
	sessions, err := s.sessions.ListSessionsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var entries []PlayerEntry
	for _, session := range sessions {
		attendance, err := s.sessions.GetAttendance(ctx, session.ID, playerID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load attendance: %w", err)
		}

		entry := PlayerEntry{Session: session, Present: err == nil && attendance.Present}
		behavior, err := s.sessions.GetBehaviorEntry(ctx, session.ID, playerID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load behavior: %w", err)
		}
		if err == nil {
			entry.Note = behavior.Note
			if entry.Present {
				entry.Status = behavior.Status
				entry.Tags = behavior.Tags
			}
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Session.DateTime.After(entries[j].Session.DateTime)
	})
	return entries, nil
}

// SessionTally is one session annotated with behavior counts across its
// attending players. Absent players contribute nothing even when a
// behavior row exists for them.
type SessionTally struct {
	Session     sessiondomain.Session
	GreenCount  int
	YellowCount int
	RedCount    int
}

// TeamReport lists a team's sessions in a date range, newest first, with
// per-session and overall behavior counts.
type TeamReport struct {
	Sessions    []SessionTally
	GreenCount  int
	YellowCount int
	RedCount    int
}

// TeamHistory tallies behavior statuses of attending players across a
// team's sessions. The range is inclusive and compares calendar dates in
// each session's own timezone, so a session late on the boundary day
// still counts. A zero bound leaves that side open.
func (s *Service) TeamHistory(ctx context.Context, teamID string, from, to time.Time) (TeamReport, error) {
	sessions, err := s.sessions.ListSessionsByTeam(ctx, teamID)
	if err != nil {
		return TeamReport{}, fmt.Errorf("list sessions: %w", err)
	}

	var report TeamReport
	for _, session := range sessions {
		day := dateOnly(session.DateTime)
		if !from.IsZero() && day.Before(dateOnly(from.In(session.DateTime.Location()))) {
			continue
		}
		if !to.IsZero() && day.After(dateOnly(to.In(session.DateTime.Location()))) {
			continue
		}

		attendance, err := s.sessions.ListAttendanceBySession(ctx, session.ID)
		if err != nil {
			return TeamReport{}, fmt.Errorf("load attendance: %w", err)
		}
		behavior, err := s.sessions.ListBehaviorBySession(ctx, session.ID)
		if err != nil {
			return TeamReport{}, fmt.Errorf("load behavior: %w", err)
		}
		present := make(map[string]bool, len(attendance))
		for _, row := range attendance {
			present[row.PlayerID] = row.Present
		}

		tally := SessionTally{Session: session}
		for _, entry := range behavior {
			if !present[entry.PlayerID] {
				continue
			}
			switch entry.Status {
			case sessiondomain.BehaviorStatusGreen:
				tally.GreenCount++
			case sessiondomain.BehaviorStatusYellow:
				tally.YellowCount++
			case sessiondomain.BehaviorStatusRed:
				tally.RedCount++
			}
		}
		report.Sessions = append(report.Sessions, tally)
		report.GreenCount += tally.GreenCount
		report.YellowCount += tally.YellowCount
		report.RedCount += tally.RedCount
	}

	sort.SliceStable(report.Sessions, func(i, j int) bool {
		return report.Sessions[i].Session.DateTime.After(report.Sessions[j].Session.DateTime)
	})
	return report, nil
}

// CoachSchedule splits a coach's sessions around the current instant.
// Upcoming sessions are soonest first, past sessions newest first.
type CoachSchedule struct {
	Upcoming []sessiondomain.Session
	Past     []sessiondomain.Session
}

// CoachSessions gathers every session of the teams a coach runs.
func (s *Service) CoachSessions(ctx context.Context, coach string) (CoachSchedule, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return CoachSchedule{}, fmt.Errorf("list teams: %w", err)
	}

	now := s.clock()
	var schedule CoachSchedule
	for _, team := range teams {
		if team.Coach != coach {
			continue
		}
		sessions, err := s.sessions.ListSessionsByTeam(ctx, team.ID)
		if err != nil {
			return CoachSchedule{}, fmt.Errorf("list sessions for %s: %w", team.ID, err)
		}
		for _, session := range sessions {
			if session.DateTime.After(now) {
				schedule.Upcoming = append(schedule.Upcoming, session)
			} else {
				schedule.Past = append(schedule.Past, session)
			}
		}
	}

	sort.SliceStable(schedule.Upcoming, func(i, j int) bool {
		return schedule.Upcoming[i].DateTime.Before(schedule.Upcoming[j].DateTime)
	})
	sort.SliceStable(schedule.Past, func(i, j int) bool {
		return schedule.Past[i].DateTime.After(schedule.Past[j].DateTime)
	})
	return schedule, nil
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}
