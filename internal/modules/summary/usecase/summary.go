package usecase

import (
	"context"
	"errors"
	"fmt"

	feeddto "kitchen/internal/modules/feed/dto"
	feedin "kitchen/internal/modules/feed/port/in"
	ledgerin "kitchen/internal/modules/ledger/port/in"
	"kitchen/internal/modules/summary/domain"
	"kitchen/internal/modules/summary/dto"
	summaryin "kitchen/internal/modules/summary/port/in"
	summaryout "kitchen/internal/modules/summary/port/out"
	"kitchen/internal/modules/summary/service"
	apperrors "kitchen/internal/platform/errors"
)

type Interactor struct {
	svc      *service.SummaryService
	ledger   ledgerin.Usecase
	feed     feedin.Usecase
	exporter summaryout.Exporter
}

func NewInteractor(svc *service.SummaryService, ledger ledgerin.Usecase, feed feedin.Usecase, exporter summaryout.Exporter) summaryin.Usecase {
	return &Interactor{svc: svc, ledger: ledger, feed: feed, exporter: exporter}
}

func (i *Interactor) Summarize(ctx context.Context, input dto.SummarizeInput) (dto.SummaryOutput, error) {
	report, err := i.report(ctx, input)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return output(report), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.SummarizeInput) (dto.ExportOutput, error) {
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("%w: summary exporter is not configured", apperrors.ErrConfiguration)
	}
	report, err := i.report(ctx, input)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	summary := output(report)
	result, err := i.exporter.Export(ctx, report, summary.Markdown)
	if err != nil {
		i.svc.Logger().Error("summary export failed", "error", err)
		return dto.ExportOutput{}, err
	}
	i.svc.Logger().Info("summary exported", "path", result.Path, "progress", result.ProgressPath)
	return dto.ExportOutput{Summary: summary, Path: result.Path, ProgressPath: result.ProgressPath}, nil
}

func (i *Interactor) report(ctx context.Context, input dto.SummarizeInput) (domain.Report, error) {
	if i.ledger == nil {
		return domain.Report{}, fmt.Errorf("%w: ledger usecase is not configured", apperrors.ErrConfiguration)
	}
	overview, err := i.ledger.Overview(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	display, err := i.ledger.Display(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	var last *feeddto.NoteOutput
	if i.feed != nil {
		note, err := i.feed.Last(ctx)
		switch {
		case err == nil:
			last = &note
		case !errors.Is(err, apperrors.ErrNotFound):
			return domain.Report{}, err
		}
	}
	return i.svc.Build(input.Findings, input.Audience, overview, &display, last), nil
}

func output(report domain.Report) dto.SummaryOutput {
	return dto.SummaryOutput{
		Audience:    report.Audience,
		GeneratedAt: report.GeneratedAt,
		Stages:      report.StageIDs(),
		Markdown:    report.Markdown(),
	}
}
