package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "kitchen/internal/platform/errors"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Timer is the single stopwatch of a workspace. StartedAt is set if and
// only if Running is true.
type Timer struct {
	Running   bool
	StageID   string
	Author    string
	StartedAt time.Time
}

// WorkEntry is one completed start/stop pair.
type WorkEntry struct {
	ID        string
	StageID   string
	Author    string
	StartedAt time.Time
	StoppedAt time.Time
	Hours     float64
}

// Tracker holds the ledger and the timer for one workspace session.
type Tracker struct {
	Goals GoalTable
	Hours map[string]float64
	Timer Timer
}

func NewTracker(goals GoalTable) *Tracker {
	return &Tracker{Goals: goals, Hours: map[string]float64{}}
}

func (t *Tracker) Clone() *Tracker {
	hours := make(map[string]float64, len(t.Hours))
	for k, v := range t.Hours {
		hours[k] = v
	}
	return &Tracker{Goals: t.Goals, Hours: hours, Timer: t.Timer}
}

func (t *Tracker) State() State {
	if t.Timer.Running {
		return StateRunning
	}
	return StateIdle
}

func (t *Tracker) Start(stageName, author string, now time.Time) (Stage, error) {
	if t.Timer.Running {
		return Stage{}, fmt.Errorf("%w: timer already running for %s", apperrors.ErrInvalidState, t.Timer.StageID)
	}
	stage, err := t.Goals.Lookup(stageName)
	if err != nil {
		return Stage{}, err
	}
	t.Timer = Timer{
		Running:   true,
		StageID:   stage.ID,
		Author:    strings.TrimSpace(author),
		StartedAt: now,
	}
	return stage, nil
}

// Stop folds the elapsed time into the ledger and returns the completed
// entry. The entry ID is left for the caller to assign.
func (t *Tracker) Stop(now time.Time) (WorkEntry, error) {
	if !t.Timer.Running {
		return WorkEntry{}, fmt.Errorf("%w: timer is not running", apperrors.ErrInvalidState)
	}
	hours := t.Elapsed(now).Seconds() / 3600
	entry := WorkEntry{
		StageID:   t.Timer.StageID,
		Author:    t.Timer.Author,
		StartedAt: t.Timer.StartedAt,
		StoppedAt: now,
		Hours:     hours,
	}
	t.Hours[t.Timer.StageID] += hours
	t.Timer = Timer{}
	return entry, nil
}

// Reset discards the running timer without touching the ledger.
func (t *Tracker) Reset() (Timer, error) {
	if !t.Timer.Running {
		return Timer{}, fmt.Errorf("%w: timer is not running", apperrors.ErrInvalidState)
	}
	discarded := t.Timer
	t.Timer = Timer{}
	return discarded, nil
}

// ClearLedger zeroes one stage, or every stage when stageName is empty.
func (t *Tracker) ClearLedger(stageName string) error {
	if strings.TrimSpace(stageName) == "" {
		t.Hours = map[string]float64{}
		return nil
	}
	stage, err := t.Goals.Lookup(stageName)
	if err != nil {
		return err
	}
	delete(t.Hours, stage.ID)
	return nil
}

// Elapsed is zero while idle and never negative.
func (t *Tracker) Elapsed(now time.Time) time.Duration {
	if !t.Timer.Running {
		return 0
	}
	d := now.Sub(t.Timer.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Tracker) Display(now time.Time) string {
	return FormatElapsed(t.Elapsed(now))
}

func (t *Tracker) HoursFor(stageID string) float64 {
	return t.Hours[stageID]
}

// Progress is hours/goal capped at 1.
func (t *Tracker) Progress(stageName string) (float64, error) {
	stage, err := t.Goals.Lookup(stageName)
	if err != nil {
		return 0, err
	}
	return StageProgress(stage, t.Hours[stage.ID])
}

func StageProgress(stage Stage, hours float64) (float64, error) {
	if stage.Goal == 0 {
		return 0, fmt.Errorf("%w: stage %q has a zero goal", apperrors.ErrDivisionUndefined, stage.Name)
	}
	return math.Max(0, math.Min(hours/stage.Goal, 1)), nil
}

// FormatElapsed renders d as HH:MM:SS, truncating sub-second precision.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
