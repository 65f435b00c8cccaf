package usecase

import (
	"context"

	"kitchen/internal/modules/ledger/domain"
	"kitchen/internal/modules/ledger/dto"
	ledgerin "kitchen/internal/modules/ledger/port/in"
	"kitchen/internal/modules/ledger/service"
)

type Interactor struct {
	svc *service.LedgerService
}

func NewInteractor(svc *service.LedgerService) ledgerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.TimerOutput, error) {
	tracker, _, err := i.svc.Start(ctx, input.Stage, input.Author)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return i.timerOutput(tracker), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	tracker, entry, err := i.svc.Stop(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	out := dto.StopOutput{
		EntryID:    entry.ID,
		StageID:    entry.StageID,
		StageName:  i.stageName(entry.StageID),
		Author:     entry.Author,
		StartedAt:  entry.StartedAt,
		StoppedAt:  entry.StoppedAt,
		Hours:      entry.Hours,
		TotalHours: tracker.HoursFor(entry.StageID),
	}
	if stage, ok := i.svc.Goals().ByID(entry.StageID); ok {
		if progress, err := domain.StageProgress(stage, out.TotalHours); err == nil {
			out.Progress = progress
		}
	}
	return out, nil
}

func (i *Interactor) Reset(ctx context.Context) (dto.TimerOutput, error) {
	discarded, err := i.svc.Reset(ctx)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return dto.TimerOutput{
		State:     string(domain.StateIdle),
		StageID:   discarded.StageID,
		StageName: i.stageName(discarded.StageID),
		Author:    discarded.Author,
		StartedAt: discarded.StartedAt,
	}, nil
}

func (i *Interactor) ClearLedger(ctx context.Context, input dto.ClearInput) (dto.OverviewOutput, error) {
	tracker, err := i.svc.ClearLedger(ctx, input.Stage)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	return i.overview(tracker), nil
}

func (i *Interactor) Display(ctx context.Context) (dto.DisplayOutput, error) {
	tracker, err := i.svc.Current(ctx)
	if err != nil {
		return dto.DisplayOutput{}, err
	}
	now := i.svc.Now()
	return dto.DisplayOutput{
		Running:   tracker.Timer.Running,
		StageID:   tracker.Timer.StageID,
		StageName: i.stageName(tracker.Timer.StageID),
		Author:    tracker.Timer.Author,
		StartedAt: tracker.Timer.StartedAt,
		Elapsed:   tracker.Elapsed(now),
		Text:      tracker.Display(now),
	}, nil
}

func (i *Interactor) Progress(ctx context.Context, stageName string) (dto.StageOutput, error) {
	tracker, err := i.svc.Current(ctx)
	if err != nil {
		return dto.StageOutput{}, err
	}
	stage, err := tracker.Goals.Lookup(stageName)
	if err != nil {
		return dto.StageOutput{}, err
	}
	progress, err := tracker.Progress(stage.ID)
	if err != nil {
		return dto.StageOutput{}, err
	}
	out := stageOutput(stage, tracker.HoursFor(stage.ID))
	out.Progress = progress
	return out, nil
}

func (i *Interactor) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	tracker, err := i.svc.Current(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	return i.overview(tracker), nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.WorkEntryOutput, error) {
	entries, err := i.svc.History(ctx, input.Stage, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkEntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.WorkEntryOutput{
			ID:        entry.ID,
			StageID:   entry.StageID,
			StageName: i.stageName(entry.StageID),
			Author:    entry.Author,
			StartedAt: entry.StartedAt,
			StoppedAt: entry.StoppedAt,
			Hours:     entry.Hours,
		})
	}
	return out, nil
}

func (i *Interactor) overview(tracker *domain.Tracker) dto.OverviewOutput {
	stages := tracker.Goals.Stages()
	out := dto.OverviewOutput{
		Stages: make([]dto.StageOutput, 0, len(stages)),
		Timer:  i.timerOutput(tracker),
	}
	for _, stage := range stages {
		item := stageOutput(stage, tracker.HoursFor(stage.ID))
		progress, err := domain.StageProgress(stage, item.Hours)
		if err != nil {
			item.ProgressErr = err.Error()
		}
		item.Progress = progress
		out.Stages = append(out.Stages, item)
	}
	return out
}

func (i *Interactor) timerOutput(tracker *domain.Tracker) dto.TimerOutput {
	return dto.TimerOutput{
		State:     string(tracker.State()),
		StageID:   tracker.Timer.StageID,
		StageName: i.stageName(tracker.Timer.StageID),
		Author:    tracker.Timer.Author,
		StartedAt: tracker.Timer.StartedAt,
	}
}

// stageName falls back to the raw ID for stages dropped from the goal table.
func (i *Interactor) stageName(stageID string) string {
	if stageID == "" {
		return ""
	}
	if stage, ok := i.svc.Goals().ByID(stageID); ok {
		return stage.Name
	}
	return stageID
}

func stageOutput(stage domain.Stage, hours float64) dto.StageOutput {
	return dto.StageOutput{
		ID:    stage.ID,
		Name:  stage.Name,
		Goal:  stage.Goal,
		Unit:  domain.UnitHours,
		Hours: hours,
	}
}
