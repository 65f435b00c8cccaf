package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kitchen/internal/platform/config"
	apperrors "kitchen/internal/platform/errors"
)

func newApp(t *testing.T, dir string) *App {
	t.Helper()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := New(cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestWorkspaceFlowAcrossModules(t *testing.T) {
	t.Setenv("KITCHEN_SNAPSHOT", "")
	t.Setenv("KITCHEN_LOG_LEVEL", "debug")
	dir := t.TempDir()
	ctx := context.Background()
	app := newApp(t, dir)

	if _, err := app.LedgerCLI.Start(ctx, "action plan", "Cathy"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := app.LedgerCLI.Start(ctx, "research", "Helen"); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on second start, got %v", err)
	}
	stopped, err := app.LedgerCLI.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.StageID != "action-plan" || stopped.EntryID == "" {
		t.Fatalf("unexpected stop output: %+v", stopped)
	}
	history, err := app.LedgerCLI.History(ctx, "", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != stopped.EntryID {
		t.Fatalf("unexpected history: %+v", history)
	}

	if _, err := app.FeedCLI.Post(ctx, "helen", "briefing booked"); err != nil {
		t.Fatalf("post: %v", err)
	}
	out, err := app.SummaryCLI.Export(ctx, "", "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out.Summary.Markdown, "briefing booked") {
		t.Fatalf("summary missing last note:\n%s", out.Summary.Markdown)
	}
	if _, err := os.Stat(filepath.Join(dir, "PROGRESS.md")); err != nil {
		t.Fatalf("progress file: %v", err)
	}

	// A fresh process sees the same state.
	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened := newApp(t, dir)
	overview, err := reopened.LedgerCLI.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Timer.State != "idle" || len(overview.Stages) != 5 {
		t.Fatalf("unexpected overview after reload: %+v", overview)
	}
	notes, err := reopened.FeedCLI.List(ctx, 0)
	if err != nil || len(notes) != 1 || notes[0].Author != "Helen" {
		t.Fatalf("unexpected notes after reload: %+v %v", notes, err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, ".kitchen", "logs", "kitchen.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "timer stopped") {
		t.Fatalf("expected ledger activity in log:\n%s", raw)
	}
}

func TestNewRejectsBadStageRows(t *testing.T) {
	t.Setenv("KITCHEN_SNAPSHOT", "")
	t.Setenv("KITCHEN_LOG_LEVEL", "")
	rows := map[string]string{
		"days": "stages:\n  - {name: Research, goal: 60, unit: days}\n",
		"nan":  "stages:\n  - {name: Research, goal: .nan}\n",
		"inf":  "stages:\n  - {name: Research, goal: .inf}\n",
	}
	for name, raw := range rows {
		dir := t.TempDir()
		path := filepath.Join(dir, config.StateDir, config.ProjectFileName)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("%s: mkdir: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		cfg, err := config.New(dir)
		if err != nil {
			t.Fatalf("%s: config: %v", name, err)
		}
		if _, err := New(cfg); !errors.Is(err, apperrors.ErrConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", name, err)
		}
	}
}
