package dto

import "time"

type StartInput struct {
	Stage  string
	Author string
}

type ClearInput struct {
	Stage string
}

type HistoryInput struct {
	Stage string
	Limit int
}

type TimerOutput struct {
	State     string
	StageID   string
	StageName string
	Author    string
	StartedAt time.Time
}

type StopOutput struct {
	EntryID    string
	StageID    string
	StageName  string
	Author     string
	StartedAt  time.Time
	StoppedAt  time.Time
	Hours      float64
	TotalHours float64
	Progress   float64
}

type DisplayOutput struct {
	Running   bool
	StageID   string
	StageName string
	Author    string
	StartedAt time.Time
	Elapsed   time.Duration
	Text      string
}

type StageOutput struct {
	ID       string
	Name     string
	Goal     float64
	Unit     string
	Hours    float64
	Progress float64
	// ProgressErr is set when progress is undefined for this stage.
	ProgressErr string
}

type OverviewOutput struct {
	Stages []StageOutput
	Timer  TimerOutput
}

type WorkEntryOutput struct {
	ID        string
	StageID   string
	StageName string
	Author    string
	StartedAt time.Time
	StoppedAt time.Time
	Hours     float64
}
