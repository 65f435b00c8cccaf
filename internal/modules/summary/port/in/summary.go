package in

import (
	"context"

	"kitchen/internal/modules/summary/dto"
)

type Usecase interface {
	Summarize(ctx context.Context, input dto.SummarizeInput) (dto.SummaryOutput, error)
	Export(ctx context.Context, input dto.SummarizeInput) (dto.ExportOutput, error)
}
