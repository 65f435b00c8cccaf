package in

import (
	"context"

	"kitchen/internal/modules/feed/dto"
	feedin "kitchen/internal/modules/feed/port/in"
)

type CLIHandler struct {
	usecase feedin.Usecase
}

func NewCLIHandler(usecase feedin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Post(ctx context.Context, author, text string) (dto.NoteOutput, error) {
	return h.usecase.Post(ctx, dto.PostInput{Author: author, Text: text})
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]dto.NoteOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Limit: limit})
}

func (h CLIHandler) SetWorkload(ctx context.Context, member, value string) (dto.WorkloadOutput, error) {
	return h.usecase.SetWorkload(ctx, dto.WorkloadInput{Member: member, Value: value})
}

func (h CLIHandler) Board(ctx context.Context) (dto.BoardOutput, error) {
	return h.usecase.Board(ctx)
}
