package in

import (
	"context"

	"kitchen/internal/modules/ledger/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.TimerOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	Reset(ctx context.Context) (dto.TimerOutput, error)
	ClearLedger(ctx context.Context, input dto.ClearInput) (dto.OverviewOutput, error)
	Display(ctx context.Context) (dto.DisplayOutput, error)
	Progress(ctx context.Context, stage string) (dto.StageOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.WorkEntryOutput, error)
}
