package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "kitchen/internal/platform/errors"
)

func TestNewUsesDefaultsWithoutProjectFile(t *testing.T) {
	t.Setenv("KITCHEN_SNAPSHOT", "")
	t.Setenv("KITCHEN_LOG_LEVEL", "")
	dir := t.TempDir()

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SnapshotPath != filepath.Join(dir, ".kitchen", "state.json") {
		t.Fatalf("unexpected snapshot path %q", cfg.SnapshotPath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if len(cfg.Project.Stages) != 5 || cfg.Project.Stages[2].Name != "Action Plan" || cfg.Project.Stages[2].Goal != 56 {
		t.Fatalf("unexpected default stages: %+v", cfg.Project.Stages)
	}
	if len(cfg.Project.Members) != 2 {
		t.Fatalf("unexpected default members: %v", cfg.Project.Members)
	}
}

func TestNewAppliesEnvironment(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "shared.json")
	t.Setenv("KITCHEN_SNAPSHOT", custom)
	t.Setenv("KITCHEN_LOG_LEVEL", "debug")

	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.SnapshotPath != custom || cfg.LogLevel != "debug" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoadProjectFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ProjectFileName)
	raw := "members: [Ana]\nstages:\n  - {name: Draft, goal: 10, unit: hours}\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
	project, err := LoadProject(path)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if project.Version != 1 || len(project.Stages) != 1 || project.Stages[0].Name != "Draft" || project.Members[0] != "Ana" {
		t.Fatalf("unexpected project: %+v", project)
	}
}

func TestLoadProjectRejectsBadFiles(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"no stages": "version: 1\nmembers: [Ana]\n",
		"not yaml":  "stages: [unterminated\n",
	}
	for name, raw := range cases {
		path := filepath.Join(t.TempDir(), ProjectFileName)
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if _, err := LoadProject(path); !errors.Is(err, apperrors.ErrConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", name, err)
		}
	}
}

func TestWriteDefaultProjectOnlyOnce(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), StateDir, ProjectFileName)

	written, err := WriteDefaultProject(path)
	if err != nil || !written {
		t.Fatalf("expected first write, got written=%v err=%v", written, err)
	}
	if err := os.WriteFile(path, []byte("stages: [{name: Mine, goal: 1}]\n"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	written, err = WriteDefaultProject(path)
	if err != nil || written {
		t.Fatalf("expected existing file to be kept, got written=%v err=%v", written, err)
	}
	project, err := LoadProject(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if project.Stages[0].Name != "Mine" {
		t.Fatalf("existing project overwritten: %+v", project)
	}
}
