// Package seed builds the starter fixture loaded into an empty entity
// store: two teams, their rosters, a small drill catalog, two training
// plans, and one recorded session from a week before the reference time.
package seed

import (
	"time"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	clubdomain "github.com/louisbranch/touchline/internal/club/domain"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	"github.com/louisbranch/touchline/internal/storage"
)

// Snapshot returns the starter fixture. The entity IDs are fixed so the
// fixture is deterministic; only the timestamps depend on now.
func Snapshot(now func() time.Time) storage.Snapshot {
	if now == nil {
		now = time.Now
	}
	current := now().UTC()
	weekAgo := current.Add(-7 * 24 * time.Hour)

	return storage.Snapshot{
		Teams: []clubdomain.Team{
			{ID: "t1", Name: "U6 Lions", AgeGroup: "U5-U6", Coach: "Coach Bob", CreatedAt: current, UpdatedAt: current},
			{ID: "t2", Name: "U8 Tigers", AgeGroup: "U7-U8", Coach: "Coach Alice", CreatedAt: current, UpdatedAt: current},
		},
		Players: []clubdomain.Player{
			{ID: "p1", TeamID: "t1", Name: "Sam Jones", DateOfBirth: "2018-05-10", Notes: "Very energetic", CreatedAt: current, UpdatedAt: current},
			{ID: "p2", TeamID: "t1", Name: "Mia Wong", DateOfBirth: "2018-08-22", Notes: "Shy at first", CreatedAt: current, UpdatedAt: current},
			{ID: "p3", TeamID: "t1", Name: "Leo Smith", DateOfBirth: "2018-03-15", CreatedAt: current, UpdatedAt: current},
			{ID: "p4", TeamID: "t2", Name: "Ava Chen", DateOfBirth: "2016-06-01", Notes: "Good leader", CreatedAt: current, UpdatedAt: current},
			{ID: "p5", TeamID: "t2", Name: "Noah Brown", DateOfBirth: "2016-09-12", Notes: "Needs encouragement", CreatedAt: current, UpdatedAt: current},
		},
		Drills: []catalogdomain.Drill{
			{
				ID:           "d1",
				Name:         "Dribbling Gates",
				AgeGroups:    []string{"U5-U6", "U7-U8"},
				Category:     catalogdomain.DrillCategoryTechnical,
				Description:  "Players dribble through various cone gates to improve close control and awareness.",
				Duration:     10,
				Equipment:    []string{"Cones", "Balls"},
				Tags:         []string{"dribbling", "warm-up"},
				VideoURL:     "https://www.youtube.com/embed/U-x_kSst_4E",
				Setup:        `Create a 10x10 yard grid. Inside the grid, set up 5-7 "gates" using two cones spaced about 2 feet apart.`,
				Instructions: "Players dribble inside the area. The aim is to dribble through as many gates as possible in 60 seconds. Encourage players to keep their head up to see the gates and other players. After each round, ask them to try and beat their score.",
				CreatedAt:    current,
				UpdatedAt:    current,
			},
			{
				ID:           "d2",
				Name:         "Red Light, Green Light",
				AgeGroups:    []string{"U5-U6"},
				Category:     catalogdomain.DrillCategorySocial,
				Description:  "A fun game to practice starting and stopping with the ball based on the coach's command.",
				Duration:     5,
				Equipment:    []string{"Balls"},
				Tags:         []string{"listening", "fun"},
				Setup:        "Players line up on one end of the field, each with a ball.",
				Instructions: `When the coach yells "Green Light!", players dribble towards the other end. When the coach yells "Red Light!", players must stop their ball as quickly as possible. This teaches listening skills and ball control.`,
				CreatedAt:    current,
				UpdatedAt:    current,
			},
			{
				ID:           "d3",
				Name:         "1v1 to Goal",
				AgeGroups:    []string{"U7-U8"},
				Category:     catalogdomain.DrillCategoryTechnical,
				Description:  "Players compete one-on-one to score in a small goal, focusing on attacking and defending skills.",
				Duration:     15,
				Equipment:    []string{"Balls", "Small Goals"},
				Tags:         []string{"1v1", "shooting"},
				Setup:        "Set up two small goals about 15-20 yards apart. Players form two lines, one by each goal. The first player in one line starts with the ball.",
				Instructions: "The player with the ball (attacker) tries to score on the opposite goal. The first player from the other line acts as the defender. After the play is over (goal or ball out of bounds), they switch roles. Focus on encouraging creativity from the attacker and good defensive posture.",
				CreatedAt:    current,
				UpdatedAt:    current,
			},
		},
		Plans: []catalogdomain.TrainingPlan{
			{
				ID:    "tp1",
				Name:  "U6 Fun & Dribbling",
				Theme: "Ball mastery & listening",
				Drills: []catalogdomain.PlanDrill{
					{DrillID: "d2", Duration: 5},
					{DrillID: "d1", Duration: 10},
				},
				CreatedAt: current,
				UpdatedAt: current,
			},
			{
				ID:    "tp2",
				Name:  "U8 Competitive Intro",
				Theme: "1v1 and respect in duels",
				Drills: []catalogdomain.PlanDrill{
					{DrillID: "d1", Duration: 10},
					{DrillID: "d3", Duration: 15},
				},
				CreatedAt: current,
				UpdatedAt: current,
			},
		},
		Sessions: []storage.SessionRecord{
			{
				Session: sessiondomain.Session{
					ID:             "s1",
					TeamID:         "t1",
					TrainingPlanID: "tp1",
					DateTime:       weekAgo,
					Type:           sessiondomain.SessionTypeTraining,
					Focus:          "Dribbling",
					Notes:          "Great energy from the team today. Everyone was focused during the dribbling drills.",
				},
				Attendance: []sessiondomain.Attendance{
					{SessionID: "s1", PlayerID: "p1", Present: true},
					{SessionID: "s1", PlayerID: "p2", Present: true},
					{SessionID: "s1", PlayerID: "p3", Present: true},
				},
				Behavior: []sessiondomain.BehaviorEntry{
					{SessionID: "s1", PlayerID: "p1", Status: sessiondomain.BehaviorStatusGreen, Tags: []sessiondomain.BehaviorTag{sessiondomain.BehaviorTagEffort}},
					{SessionID: "s1", PlayerID: "p2", Status: sessiondomain.BehaviorStatusYellow, Tags: []sessiondomain.BehaviorTag{sessiondomain.BehaviorTagDistraction}, Note: "Was talking a lot at the start."},
					{SessionID: "s1", PlayerID: "p3", Status: sessiondomain.BehaviorStatusGreen},
				},
			},
		},
	}
}
