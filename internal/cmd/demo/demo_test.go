package demo

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/touchline/internal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.TeamID != "t1" {
		t.Fatalf("expected default team t1, got %q", cfg.TeamID)
	}
	if cfg.Focus != "Dribbling" {
		t.Fatalf("expected default focus, got %q", cfg.Focus)
	}
	if cfg.StoragePath != "" {
		t.Fatalf("expected persistence off by default, got %q", cfg.StoragePath)
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("TOUCHLINE_TEAM_ID", "t2")
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.TeamID != "t2" {
		t.Fatalf("expected env team t2, got %q", cfg.TeamID)
	}
}

func TestParseConfigFlagsOverride(t *testing.T) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-team", "t2", "-focus", "Passing", "-verbose"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.TeamID != "t2" || cfg.Focus != "Passing" || !cfg.Verbose {
		t.Fatalf("expected flag overrides, got %+v", cfg)
	}
}

func TestRunScriptedSession(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg := Config{TeamID: "t1", Focus: "Dribbling"}

	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "running drill:") {
		t.Fatalf("expected drill playback in output, got:\n%s", output)
	}
	if !strings.Contains(output, "2/3 present") {
		t.Fatalf("expected attendance tally in output, got:\n%s", output)
	}
	if !strings.Contains(output, "last month: 2 sessions") {
		t.Fatalf("expected history report in output, got:\n%s", output)
	}
}

func TestRunUnknownTeam(t *testing.T) {
	cfg := Config{TeamID: "missing", Focus: "Dribbling"}
	if err := Run(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected unknown team to fail")
	}
}

func TestRunPersistsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchline.db")
	cfg := Config{TeamID: "t1", Focus: "Dribbling", StoragePath: path}

	if err := Run(context.Background(), cfg, nil, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer store.Close()

	snapshot, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(snapshot.Teams) != 2 {
		t.Fatalf("expected seeded teams persisted, got %d", len(snapshot.Teams))
	}
	// The seeded session plus the demo session.
	if len(snapshot.Sessions) != 2 {
		t.Fatalf("expected 2 sessions persisted, got %d", len(snapshot.Sessions))
	}
}
