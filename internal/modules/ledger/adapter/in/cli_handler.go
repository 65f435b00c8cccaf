package in

import (
	"context"

	"kitchen/internal/modules/ledger/dto"
	ledgerin "kitchen/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, stage, author string) (dto.TimerOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Stage: stage, Author: author})
}

func (h CLIHandler) Stop(ctx context.Context) (dto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.TimerOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) ClearLedger(ctx context.Context, stage string) (dto.OverviewOutput, error) {
	return h.usecase.ClearLedger(ctx, dto.ClearInput{Stage: stage})
}

func (h CLIHandler) Display(ctx context.Context) (dto.DisplayOutput, error) {
	return h.usecase.Display(ctx)
}

func (h CLIHandler) Progress(ctx context.Context, stage string) (dto.StageOutput, error) {
	return h.usecase.Progress(ctx, stage)
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) History(ctx context.Context, stage string, limit int) ([]dto.WorkEntryOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{Stage: stage, Limit: limit})
}
