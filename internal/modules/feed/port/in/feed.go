package in

import (
	"context"

	"kitchen/internal/modules/feed/dto"
)

type Usecase interface {
	Post(ctx context.Context, input dto.PostInput) (dto.NoteOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.NoteOutput, error)
	Last(ctx context.Context) (dto.NoteOutput, error)
	SetWorkload(ctx context.Context, input dto.WorkloadInput) (dto.WorkloadOutput, error)
	Board(ctx context.Context) (dto.BoardOutput, error)
}
