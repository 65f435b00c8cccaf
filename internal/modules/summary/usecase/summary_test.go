package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	feeddto "kitchen/internal/modules/feed/dto"
	ledgerdto "kitchen/internal/modules/ledger/dto"
	summaryout "kitchen/internal/modules/summary/adapter/out"
	"kitchen/internal/modules/summary/dto"
	"kitchen/internal/modules/summary/service"
	"kitchen/internal/modules/summary/usecase"
	"kitchen/internal/platform/clock"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/markdown"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeLedger struct {
	overview ledgerdto.OverviewOutput
	display  ledgerdto.DisplayOutput
	err      error
}

func (f fakeLedger) Start(context.Context, ledgerdto.StartInput) (ledgerdto.TimerOutput, error) {
	return ledgerdto.TimerOutput{}, nil
}
func (f fakeLedger) Stop(context.Context) (ledgerdto.StopOutput, error) {
	return ledgerdto.StopOutput{}, nil
}
func (f fakeLedger) Reset(context.Context) (ledgerdto.TimerOutput, error) {
	return ledgerdto.TimerOutput{}, nil
}
func (f fakeLedger) ClearLedger(context.Context, ledgerdto.ClearInput) (ledgerdto.OverviewOutput, error) {
	return ledgerdto.OverviewOutput{}, nil
}
func (f fakeLedger) Display(context.Context) (ledgerdto.DisplayOutput, error) {
	return f.display, nil
}
func (f fakeLedger) Progress(context.Context, string) (ledgerdto.StageOutput, error) {
	return ledgerdto.StageOutput{}, nil
}
func (f fakeLedger) Overview(context.Context) (ledgerdto.OverviewOutput, error) {
	return f.overview, f.err
}
func (f fakeLedger) History(context.Context, ledgerdto.HistoryInput) ([]ledgerdto.WorkEntryOutput, error) {
	return nil, nil
}

type fakeFeed struct {
	last *feeddto.NoteOutput
}

func (f fakeFeed) Post(context.Context, feeddto.PostInput) (feeddto.NoteOutput, error) {
	return feeddto.NoteOutput{}, nil
}
func (f fakeFeed) List(context.Context, feeddto.ListInput) ([]feeddto.NoteOutput, error) {
	return nil, nil
}
func (f fakeFeed) Last(context.Context) (feeddto.NoteOutput, error) {
	if f.last == nil {
		return feeddto.NoteOutput{}, apperrors.ErrNotFound
	}
	return *f.last, nil
}
func (f fakeFeed) SetWorkload(context.Context, feeddto.WorkloadInput) (feeddto.WorkloadOutput, error) {
	return feeddto.WorkloadOutput{}, nil
}
func (f fakeFeed) Board(context.Context) (feeddto.BoardOutput, error) {
	return feeddto.BoardOutput{}, nil
}

func sampleLedger() fakeLedger {
	return fakeLedger{
		overview: ledgerdto.OverviewOutput{
			Stages: []ledgerdto.StageOutput{
				{ID: "research", Name: "Research", Goal: 480, Hours: 1, Progress: 1.0 / 480},
				{ID: "report", Name: "Report", Goal: 200, Hours: 0},
			},
			Timer: ledgerdto.TimerOutput{State: "running", StageID: "report", StageName: "Report", Author: "Helen"},
		},
		display: ledgerdto.DisplayOutput{Running: true, StageID: "report", StageName: "Report", Author: "Helen", Text: "00:15:00"},
	}
}

func newSummary(dir string) (*service.SummaryService, string, string) {
	svc := service.NewSummaryService(clock.Func(func() time.Time { return t0 }), []string{"Cathy", "Helen"}, nil)
	return svc, filepath.Join(dir, ".kitchen", "summaries"), filepath.Join(dir, "PROGRESS.md")
}

func TestSummarizeCoversEveryStageAndLastNote(t *testing.T) {
	t.Parallel()
	feed := fakeFeed{last: &feeddto.NoteOutput{Seq: 2, Author: "Helen", Text: "hey"}}
	svc, _, _ := newSummary(t.TempDir())
	uc := usecase.NewInteractor(svc, sampleLedger(), feed, nil)

	out, err := uc.Summarize(context.Background(), dto.SummarizeInput{Findings: "Key sources found. Pseudocode next."})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out.Audience != "Cathy/Helen" {
		t.Fatalf("expected default audience, got %q", out.Audience)
	}
	for _, want := range []string{"Research", "Report", "> **Helen:** hey", "Running on Report for 00:15:00", "Key sources found."} {
		if !strings.Contains(out.Markdown, want) {
			t.Fatalf("summary missing %q:\n%s", want, out.Markdown)
		}
	}
	if strings.Contains(out.Markdown, "Pseudocode next") {
		t.Fatalf("expected findings cut to the first sentence:\n%s", out.Markdown)
	}
}

func TestSummarizeWithEmptyFeed(t *testing.T) {
	t.Parallel()
	svc, _, _ := newSummary(t.TempDir())
	uc := usecase.NewInteractor(svc, sampleLedger(), fakeFeed{}, nil)

	out, err := uc.Summarize(context.Background(), dto.SummarizeInput{Audience: "Advisor"})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if out.Audience != "Advisor" || !strings.Contains(out.Markdown, "No notes yet.") {
		t.Fatalf("unexpected summary: %+v", out)
	}
}

func TestSummarizePropagatesLedgerErrors(t *testing.T) {
	t.Parallel()
	ledger := fakeLedger{err: apperrors.ErrPersistence}
	svc, _, _ := newSummary(t.TempDir())
	uc := usecase.NewInteractor(svc, ledger, fakeFeed{}, nil)

	if _, err := uc.Summarize(context.Background(), dto.SummarizeInput{}); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if _, err := uc.Export(context.Background(), dto.SummarizeInput{}); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("expected configuration error without exporter, got %v", err)
	}
}

func TestExportWritesNoteAndProgressBlock(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc, summaryDir, progressPath := newSummary(dir)
	if err := os.WriteFile(progressPath, []byte("# Progress\n\nWritten by hand.\n"), 0o644); err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	uc := usecase.NewInteractor(svc, sampleLedger(), fakeFeed{}, summaryout.NewMarkdownExporter(summaryDir, progressPath))

	ctx := context.Background()
	first, err := uc.Export(ctx, dto.SummarizeInput{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Dir(first.Path) != summaryDir || !strings.HasSuffix(first.Path, "-cathy-helen-summary.md") {
		t.Fatalf("unexpected summary path %q", first.Path)
	}
	content, err := os.ReadFile(first.Path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(content))
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if meta["audience"] != "Cathy/Helen" {
		t.Fatalf("unexpected frontmatter: %v", meta)
	}
	stages, ok := meta["stages"].([]any)
	if !ok || len(stages) != 2 || stages[0] != "research" {
		t.Fatalf("unexpected stages frontmatter: %#v", meta["stages"])
	}
	if !strings.Contains(body, "## Summary for Cathy/Helen") {
		t.Fatalf("unexpected body:\n%s", body)
	}

	if _, err := uc.Export(ctx, dto.SummarizeInput{Findings: "Second pass."}); err != nil {
		t.Fatalf("second export: %v", err)
	}
	progress, err := os.ReadFile(progressPath)
	if err != nil {
		t.Fatalf("read progress: %v", err)
	}
	text := string(progress)
	if !strings.Contains(text, "Written by hand.") {
		t.Fatalf("hand-written text lost:\n%s", text)
	}
	if strings.Count(text, summaryout.ProgressStart) != 1 || !strings.Contains(text, "Second pass.") {
		t.Fatalf("expected a single refreshed block:\n%s", text)
	}
}
