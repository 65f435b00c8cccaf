package in

import (
	"context"

	"kitchen/internal/modules/summary/dto"
	summaryin "kitchen/internal/modules/summary/port/in"
)

type CLIHandler struct {
	usecase summaryin.Usecase
}

func NewCLIHandler(usecase summaryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summarize(ctx context.Context, findings, audience string) (dto.SummaryOutput, error) {
	return h.usecase.Summarize(ctx, dto.SummarizeInput{Findings: findings, Audience: audience})
}

func (h CLIHandler) Export(ctx context.Context, findings, audience string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.SummarizeInput{Findings: findings, Audience: audience})
}
