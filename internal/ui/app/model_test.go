package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	feeddto "kitchen/internal/modules/feed/dto"
	ledgerdto "kitchen/internal/modules/ledger/dto"
	summarydto "kitchen/internal/modules/summary/dto"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/ui/components"
)

type fakeLedger struct {
	started []string
	authors []string
}

func (f *fakeLedger) Start(_ context.Context, stage, author string) (ledgerdto.TimerOutput, error) {
	f.started = append(f.started, stage)
	f.authors = append(f.authors, author)
	return ledgerdto.TimerOutput{State: "running", StageID: stage, StageName: stage, Author: author}, nil
}
func (f *fakeLedger) Stop(context.Context) (ledgerdto.StopOutput, error) {
	return ledgerdto.StopOutput{}, apperrors.ErrInvalidState
}
func (f *fakeLedger) Reset(context.Context) (ledgerdto.TimerOutput, error) {
	return ledgerdto.TimerOutput{}, nil
}
func (f *fakeLedger) ClearLedger(context.Context, string) (ledgerdto.OverviewOutput, error) {
	return ledgerdto.OverviewOutput{}, nil
}
func (f *fakeLedger) Overview(context.Context) (ledgerdto.OverviewOutput, error) {
	return ledgerdto.OverviewOutput{}, nil
}
func (f *fakeLedger) Display(context.Context) (ledgerdto.DisplayOutput, error) {
	return ledgerdto.DisplayOutput{Text: "00:00:00"}, nil
}

type fakeFeed struct {
	posts []string
}

func (f *fakeFeed) Post(_ context.Context, author, text string) (feeddto.NoteOutput, error) {
	f.posts = append(f.posts, author+": "+text)
	return feeddto.NoteOutput{Seq: len(f.posts), Author: author, Text: text}, nil
}
func (f *fakeFeed) List(context.Context, int) ([]feeddto.NoteOutput, error) { return nil, nil }
func (f *fakeFeed) SetWorkload(_ context.Context, member, value string) (feeddto.WorkloadOutput, error) {
	return feeddto.WorkloadOutput{Member: member, Value: value}, nil
}
func (f *fakeFeed) Board(context.Context) (feeddto.BoardOutput, error) {
	return feeddto.BoardOutput{}, nil
}

type fakeSummary struct{}

func (fakeSummary) Summarize(context.Context, string, string) (summarydto.SummaryOutput, error) {
	return summarydto.SummaryOutput{Markdown: "## Summary"}, nil
}
func (fakeSummary) Export(context.Context, string, string) (summarydto.ExportOutput, error) {
	return summarydto.ExportOutput{Path: "out.md"}, nil
}

func newTestModel() (Model, *fakeLedger, *fakeFeed) {
	ledger := &fakeLedger{}
	feed := &fakeFeed{}
	return NewModel([]string{"Cathy", "Helen"}, ledger, feed, fakeSummary{}), ledger, feed
}

func submit(t *testing.T, m Model, input string) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	model := next.(Model)
	if cmd == nil {
		return model, nil
	}
	return model, cmd()
}

func TestPaletteActsAsSelectedMember(t *testing.T) {
	t.Parallel()
	m, ledger, feed := newTestModel()

	m, _ = submit(t, m, "as helen")
	if m.author != "Helen" {
		t.Fatalf("expected author Helen, got %q", m.author)
	}

	m, msg := submit(t, m, "note  kettle is on ")
	done, ok := msg.(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("unexpected note result: %#v", msg)
	}
	if len(feed.posts) != 1 || feed.posts[0] != "Helen: kettle is on" {
		t.Fatalf("unexpected posts: %v", feed.posts)
	}

	_, msg = submit(t, m, "timer:start research")
	if _, ok := msg.(actionDoneMsg); !ok {
		t.Fatalf("expected action result, got %#v", msg)
	}
	if len(ledger.started) != 1 || ledger.started[0] != "research" || ledger.authors[0] != "Helen" {
		t.Fatalf("unexpected start calls: %v %v", ledger.started, ledger.authors)
	}
}

func TestPaletteRejectsUnknownInput(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()

	m, _ = submit(t, m, "as Mallory")
	if m.author != "Cathy" || !strings.Contains(m.status, "unknown member") {
		t.Fatalf("expected member rejection, got author=%q status=%q", m.author, m.status)
	}
	m, _ = submit(t, m, "bake:cake")
	if !strings.Contains(m.status, "unknown command") {
		t.Fatalf("unexpected status %q", m.status)
	}
	m, _ = submit(t, m, "note")
	if !strings.HasPrefix(m.status, "usage:") {
		t.Fatalf("expected usage hint, got %q", m.status)
	}
}

func TestFailedActionKeepsViewAndShowsError(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()

	m, msg := submit(t, m, "timer:stop")
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		t.Fatal("expected no refresh after a failed action")
	}
	if !m.failed || !errors.Is(msg.(actionDoneMsg).err, apperrors.ErrInvalidState) {
		t.Fatalf("expected invalid state surfaced, got %#v", msg)
	}
}

func TestTabCycles(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	for i := 0; i < int(tabCount); i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
	}
	if m.activeTab != tabStages {
		t.Fatalf("expected to wrap to the first tab, got %d", m.activeTab)
	}
}
