// Package config resolves the workspace layout and the optional
// .kitchen/kitchen.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	apperrors "kitchen/internal/platform/errors"
)

const (
	// StateDir holds everything kitchen writes inside a workspace.
	StateDir        = ".kitchen"
	ProjectFileName = "kitchen.yaml"
)

const defaultProjectYAML = `# kitchen project configuration
version: 1

# Collaborators allowed to post notes and set workloads.
members:
  - Cathy
  - Helen

# Stage goals. Every goal is in hours; one working day is 8 hours.
stages:
  - name: Research
    goal: 480
    unit: hours
  - name: Briefings
    goal: 8
    unit: hours
  - name: Action Plan
    goal: 56
    unit: hours
  - name: Creation
    goal: 1200
    unit: hours
  - name: Report
    goal: 200
    unit: hours
`

// StageConfig is one entry of the goal table as written in kitchen.yaml.
type StageConfig struct {
	Name string  `yaml:"name"`
	Goal float64 `yaml:"goal"`
	Unit string  `yaml:"unit,omitempty"`
}

// Project models .kitchen/kitchen.yaml.
type Project struct {
	Version int           `yaml:"version"`
	Members []string      `yaml:"members"`
	Stages  []StageConfig `yaml:"stages"`
}

type Config struct {
	Dir          string
	StateDir     string
	ProjectPath  string
	SnapshotPath string
	DBPath       string
	LogPath      string
	SummaryDir   string
	ProgressPath string
	LogLevel     string
	Project      Project
}

type environment struct {
	SnapshotPath string `env:"KITCHEN_SNAPSHOT"`
	LogLevel     string `env:"KITCHEN_LOG_LEVEL" envDefault:"info"`
}

func New(dir string) (Config, error) {
	if dir == "" {
		return Config{}, fmt.Errorf("%w: workspace dir is required", apperrors.ErrConfiguration)
	}
	stateDir := filepath.Join(dir, StateDir)
	cfg := Config{
		Dir:          dir,
		StateDir:     stateDir,
		ProjectPath:  filepath.Join(stateDir, ProjectFileName),
		SnapshotPath: filepath.Join(stateDir, "state.json"),
		DBPath:       filepath.Join(stateDir, "kitchen.db"),
		LogPath:      filepath.Join(stateDir, "logs", "kitchen.log"),
		SummaryDir:   filepath.Join(stateDir, "summaries"),
		ProgressPath: filepath.Join(dir, "PROGRESS.md"),
	}

	var vars environment
	if err := env.Parse(&vars); err != nil {
		return Config{}, fmt.Errorf("%w: parse environment: %v", apperrors.ErrConfiguration, err)
	}
	if vars.SnapshotPath != "" {
		cfg.SnapshotPath = vars.SnapshotPath
	}
	cfg.LogLevel = vars.LogLevel

	project, err := LoadProject(cfg.ProjectPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Project = project
	return cfg, nil
}

// LoadProject reads the project file, falling back to DefaultProject when
// the file does not exist.
func LoadProject(path string) (Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultProject(), nil
		}
		return Project{}, fmt.Errorf("%w: read %s: %v", apperrors.ErrConfiguration, path, err)
	}
	return parseProject(raw)
}

func DefaultProject() Project {
	project, err := parseProject([]byte(defaultProjectYAML))
	if err != nil {
		panic(fmt.Sprintf("config: default project is invalid: %v", err))
	}
	return project
}

// WriteDefaultProject creates the project file unless one already exists.
// It reports whether a file was written.
func WriteDefaultProject(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectYAML), 0o644); err != nil {
		return false, fmt.Errorf("write project config: %w", err)
	}
	return true, nil
}

func parseProject(raw []byte) (Project, error) {
	var project Project
	if err := yaml.Unmarshal(raw, &project); err != nil {
		return Project{}, fmt.Errorf("%w: decode project config: %v", apperrors.ErrConfiguration, err)
	}
	if project.Version == 0 {
		project.Version = 1
	}
	if len(project.Stages) == 0 {
		return Project{}, fmt.Errorf("%w: project config declares no stages", apperrors.ErrConfiguration)
	}
	return project, nil
}
