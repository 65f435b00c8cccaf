package usecase

import (
	"context"

	"kitchen/internal/modules/feed/domain"
	"kitchen/internal/modules/feed/dto"
	feedin "kitchen/internal/modules/feed/port/in"
	"kitchen/internal/modules/feed/service"
)

type Interactor struct {
	svc *service.FeedService
}

func NewInteractor(svc *service.FeedService) feedin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Post(ctx context.Context, input dto.PostInput) (dto.NoteOutput, error) {
	note, err := i.svc.Post(ctx, input.Author, input.Text)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return noteOutput(note), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.NoteOutput, error) {
	feed, err := i.svc.Current(ctx)
	if err != nil {
		return nil, err
	}
	notes := feed.Tail(input.Limit)
	out := make([]dto.NoteOutput, 0, len(notes))
	for _, note := range notes {
		out = append(out, noteOutput(note))
	}
	return out, nil
}

func (i *Interactor) Last(ctx context.Context) (dto.NoteOutput, error) {
	feed, err := i.svc.Current(ctx)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	note, err := feed.Last()
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return noteOutput(note), nil
}

func (i *Interactor) SetWorkload(ctx context.Context, input dto.WorkloadInput) (dto.WorkloadOutput, error) {
	set, err := i.svc.SetWorkload(ctx, input.Member, domain.Workload(input.Value))
	if err != nil {
		return dto.WorkloadOutput{}, err
	}
	return dto.WorkloadOutput{Member: set.Member, Value: string(set.Workload)}, nil
}

func (i *Interactor) Board(ctx context.Context) (dto.BoardOutput, error) {
	feed, err := i.svc.Current(ctx)
	if err != nil {
		return dto.BoardOutput{}, err
	}
	out := dto.BoardOutput{Members: i.svc.Members()}
	for _, value := range domain.Workloads() {
		out.Allowed = append(out.Allowed, string(value))
	}
	for _, item := range feed.Board() {
		out.Workloads = append(out.Workloads, dto.WorkloadOutput{Member: item.Member, Value: string(item.Workload)})
	}
	return out, nil
}

func noteOutput(note domain.Note) dto.NoteOutput {
	return dto.NoteOutput{Seq: note.Seq, Author: note.Author, Text: note.Text, PostedAt: note.PostedAt}
}
