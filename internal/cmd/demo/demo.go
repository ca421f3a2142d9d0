// Package demo runs a scripted training day end to end: it seeds the
// entity store, sets up and runs a session, reviews the summary, and
// prints the team's history. With a storage path it also round-trips the
// store through a SQLite snapshot.
package demo

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	catalogdomain "github.com/louisbranch/touchline/internal/catalog/domain"
	catalogservice "github.com/louisbranch/touchline/internal/catalog/service"
	clubservice "github.com/louisbranch/touchline/internal/club/service"
	"github.com/louisbranch/touchline/internal/history"
	"github.com/louisbranch/touchline/internal/platform/config"
	"github.com/louisbranch/touchline/internal/seed"
	sessiondomain "github.com/louisbranch/touchline/internal/session/domain"
	sessionservice "github.com/louisbranch/touchline/internal/session/service"
	"github.com/louisbranch/touchline/internal/storage/memory"
	"github.com/louisbranch/touchline/internal/storage/sqlite"
	"github.com/louisbranch/touchline/internal/telemetry"
)

// Config holds demo command configuration.
type Config struct {
	StoragePath string `env:"TOUCHLINE_STORAGE_PATH"`
	TeamID      string `env:"TOUCHLINE_TEAM_ID"  envDefault:"t1"`
	Focus       string `env:"TOUCHLINE_FOCUS"    envDefault:"Dribbling"`
	Verbose     bool   `env:"TOUCHLINE_VERBOSE"`
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "sqlite snapshot path (empty disables persistence)")
	fs.StringVar(&cfg.TeamID, "team", cfg.TeamID, "team to run the session for")
	fs.StringVar(&cfg.Focus, "focus", cfg.Focus, "session focus")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the demo command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !cfg.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	store := memory.NewStore()
	if err := store.ImportSnapshot(ctx, seed.Snapshot(nil)); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	logger.Info().Msg("seeded entity store")

	var persistent *sqlite.Store
	if cfg.StoragePath != "" {
		opened, err := sqlite.Open(cfg.StoragePath)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		defer func() {
			if err := opened.Close(); err != nil {
				logger.Error().Err(err).Msg("close snapshot store")
			}
		}()
		persistent = opened

		snapshot, err := persistent.LoadSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if len(snapshot.Teams) > 0 {
			if err := store.ImportSnapshot(ctx, snapshot); err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}
			logger.Info().Str("path", cfg.StoragePath).Msg("restored entity store from snapshot")
		}
	}

	club := clubservice.NewClub(store, store)
	team, err := club.GetTeam(ctx, cfg.TeamID)
	if err != nil {
		return fmt.Errorf("load team: %w", err)
	}
	roster, err := club.ListPlayers(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	logger.Info().Str("team", team.Name).Int("players", len(roster)).Msg("coaching today")

	workflow := sessionservice.NewWorkflow(sessionservice.Stores{
		Teams:    store,
		Players:  store,
		Drills:   store,
		Plans:    store,
		Sessions: store,
	}, telemetry.NewEmitter(store))

	if err := runSession(ctx, workflow, catalogservice.NewCatalog(store, store), cfg, logger, out); err != nil {
		return err
	}

	histories := history.NewService(store, store)
	report, err := histories.TeamHistory(ctx, cfg.TeamID,
		time.Now().UTC().AddDate(0, -1, 0), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("team history: %w", err)
	}
	fmt.Fprintf(out, "last month: %d sessions, %d green, %d yellow, %d red\n",
		len(report.Sessions), report.GreenCount, report.YellowCount, report.RedCount)

	if persistent != nil {
		snapshot, err := store.ExportSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		if err := persistent.SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info().Str("path", cfg.StoragePath).Msg("saved entity store snapshot")
	}
	return nil
}

func runSession(ctx context.Context, workflow *sessionservice.Workflow, catalog *catalogservice.Catalog, cfg Config, logger zerolog.Logger, out io.Writer) error {
	if err := workflow.SelectTeam(ctx, cfg.TeamID); err != nil {
		return fmt.Errorf("select team: %w", err)
	}
	if err := workflow.SetFocus(cfg.Focus); err != nil {
		return fmt.Errorf("set focus: %w", err)
	}

	matched, err := catalog.ListDrills(ctx, catalogdomain.Filter{SessionFocus: []string{cfg.Focus}})
	if err != nil {
		return fmt.Errorf("list drills: %w", err)
	}
	if len(matched) == 0 {
		matched, err = catalog.ListDrills(ctx, catalogdomain.Filter{})
		if err != nil {
			return fmt.Errorf("list drills: %w", err)
		}
	}
	for _, drill := range matched {
		if err := workflow.AddDrill(ctx, drill.ID); err != nil {
			return fmt.Errorf("add drill %s: %w", drill.ID, err)
		}
		logger.Debug().Str("drill", drill.Name).Msg("queued drill")
	}

	if !workflow.CanStart() {
		return fmt.Errorf("session setup is incomplete")
	}
	if err := workflow.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	logger.Info().Str("team", cfg.TeamID).Str("focus", cfg.Focus).Msg("session started")

	for {
		current, err := workflow.CurrentDrill(ctx)
		if err != nil {
			return fmt.Errorf("current drill: %w", err)
		}
		fmt.Fprintf(out, "running drill: %s (%d min)\n", current.Drill.Name, current.PlanDrill.Duration)
		before := workflow.Cursor()
		if err := workflow.Advance(1); err != nil {
			return fmt.Errorf("advance: %w", err)
		}
		if workflow.Cursor() == before {
			break
		}
	}

	// A typical mid-session adjustment: one player steps out, another
	// earns a nod for effort.
	roster := workflow.Attendance()
	if len(roster) > 0 {
		if err := workflow.ToggleAttendance(roster[len(roster)-1].PlayerID); err != nil {
			return fmt.Errorf("toggle attendance: %w", err)
		}
	}
	if len(roster) > 1 {
		if err := workflow.ToggleBehaviorTag(roster[0].PlayerID, sessiondomain.BehaviorTagEffort); err != nil {
			return fmt.Errorf("toggle tag: %w", err)
		}
	}

	if err := workflow.Finish(ctx); err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	summary, err := workflow.Summary()
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	fmt.Fprintf(out, "session %s done: %d/%d present\n",
		summary.SessionID, summary.PresentCount, summary.TotalCount)
	for _, row := range summary.Players {
		if row.Present {
			fmt.Fprintf(out, "  %s: %s\n", row.PlayerName, row.Status)
		} else {
			fmt.Fprintf(out, "  %s: absent\n", row.PlayerName)
		}
	}

	if err := workflow.SaveNotes(ctx, "Scripted demo session."); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	workflow.Reset()
	return nil
}
