package domain

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"

	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/slug"
)

// UnitHours is the only unit a goal table may use.
const UnitHours = "hours"

// Stage is a named phase of work with a target in hours.
type Stage struct {
	ID   string
	Name string
	Goal float64
}

// StageGoal is a goal table row before validation.
type StageGoal struct {
	Name string
	Goal float64
	Unit string
}

// GoalTable is the fixed, ordered set of stages a workspace tracks.
type GoalTable struct {
	stages []Stage
	index  map[string]int
}

// foldKey builds a fresh Caser per call; Casers are stateful.
func foldKey(s string) string {
	return cases.Fold().String(s)
}

func NewGoalTable(goals []StageGoal) (GoalTable, error) {
	if len(goals) == 0 {
		return GoalTable{}, fmt.Errorf("%w: goal table is empty", apperrors.ErrConfiguration)
	}
	table := GoalTable{
		stages: make([]Stage, 0, len(goals)),
		index:  make(map[string]int, len(goals)*2),
	}
	for _, goal := range goals {
		name := strings.TrimSpace(goal.Name)
		if name == "" {
			return GoalTable{}, fmt.Errorf("%w: stage name is required", apperrors.ErrConfiguration)
		}
		if err := validateUnit(name, goal.Unit); err != nil {
			return GoalTable{}, err
		}
		if math.IsNaN(goal.Goal) || math.IsInf(goal.Goal, 0) {
			return GoalTable{}, fmt.Errorf("%w: stage %q has non-finite goal %v", apperrors.ErrConfiguration, name, goal.Goal)
		}
		if goal.Goal < 0 {
			return GoalTable{}, fmt.Errorf("%w: stage %q has negative goal %v", apperrors.ErrConfiguration, name, goal.Goal)
		}
		stage := Stage{ID: slug.Make(name), Name: name, Goal: goal.Goal}
		if _, dup := table.index[stage.ID]; dup {
			return GoalTable{}, fmt.Errorf("%w: duplicate stage %q", apperrors.ErrConfiguration, name)
		}
		pos := len(table.stages)
		table.stages = append(table.stages, stage)
		table.index[stage.ID] = pos
		table.index[foldKey(name)] = pos
	}
	return table, nil
}

// Stages returns the stages in configured order.
func (g GoalTable) Stages() []Stage {
	out := make([]Stage, len(g.stages))
	copy(out, g.stages)
	return out
}

// Lookup resolves a stage by display name (case-insensitive) or by ID.
func (g GoalTable) Lookup(name string) (Stage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Stage{}, fmt.Errorf("%w: stage is required", apperrors.ErrConfiguration)
	}
	if pos, ok := g.index[foldKey(name)]; ok {
		return g.stages[pos], nil
	}
	if pos, ok := g.index[slug.Make(name)]; ok {
		return g.stages[pos], nil
	}
	return Stage{}, fmt.Errorf("%w: unknown stage %q", apperrors.ErrConfiguration, name)
}

// ByID returns the stage with the given ID, if configured.
func (g GoalTable) ByID(id string) (Stage, bool) {
	pos, ok := g.index[id]
	if !ok || g.stages[pos].ID != id {
		return Stage{}, false
	}
	return g.stages[pos], true
}

func validateUnit(stage, unit string) error {
	switch foldKey(strings.TrimSpace(unit)) {
	case "", "hour", UnitHours:
		return nil
	default:
		return fmt.Errorf("%w: stage %q uses unit %q, goals must be in %s", apperrors.ErrConfiguration, stage, unit, UnitHours)
	}
}
