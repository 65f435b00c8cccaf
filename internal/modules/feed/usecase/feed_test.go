package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	feedout "kitchen/internal/modules/feed/adapter/out"
	"kitchen/internal/modules/feed/dto"
	feedin "kitchen/internal/modules/feed/port/in"
	"kitchen/internal/modules/feed/service"
	"kitchen/internal/modules/feed/usecase"
	ledgerout "kitchen/internal/modules/ledger/adapter/out"
	ledgerdomain "kitchen/internal/modules/ledger/domain"
	ledgerservice "kitchen/internal/modules/ledger/service"
	"kitchen/internal/platform/clock"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/snapshot"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func fixedClock() clock.Clock {
	return clock.Func(func() time.Time { return t0 })
}

func newUsecase(t *testing.T, store *snapshot.FileStore, members ...string) feedin.Usecase {
	t.Helper()
	svc := service.NewFeedService(fixedClock(), members, feedout.NewSnapshotFeedStore(store), nil)
	return usecase.NewInteractor(svc)
}

func newStore(t *testing.T) *snapshot.FileStore {
	t.Helper()
	return snapshot.NewFileStore(filepath.Join(t.TempDir(), ".kitchen", "state.json"))
}

func TestPostedNotesListInOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t, newStore(t), "Cathy", "Helen")

	if _, err := uc.Post(ctx, dto.PostInput{Author: "Cathy", Text: "hi"}); err != nil {
		t.Fatalf("post cathy: %v", err)
	}
	if _, err := uc.Post(ctx, dto.PostInput{Author: "helen", Text: "  hey  "}); err != nil {
		t.Fatalf("post helen: %v", err)
	}

	notes, err := uc.List(ctx, dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, 0, len(notes))
	for _, note := range notes {
		got = append(got, note.Author+": "+note.Text)
	}
	want := []string{"Cathy: hi", "Helen: hey"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if notes[1].Seq != 2 || !notes[1].PostedAt.Equal(t0) {
		t.Fatalf("unexpected second note: %+v", notes[1])
	}

	last, err := uc.Last(ctx)
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last.Text != "hey" {
		t.Fatalf("expected last note hey, got %q", last.Text)
	}

	tail, err := uc.List(ctx, dto.ListInput{Limit: 1})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(tail) != 1 || tail[0].Seq != 2 {
		t.Fatalf("expected only the latest note, got %+v", tail)
	}
}

func TestPostRejectsEmptyTextAndStrangers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t, newStore(t), "Cathy", "Helen")

	if _, err := uc.Post(ctx, dto.PostInput{Author: "Cathy", Text: "   "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank text, got %v", err)
	}
	if _, err := uc.Post(ctx, dto.PostInput{Author: "Mallory", Text: "hello"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for non-member, got %v", err)
	}
	if _, err := uc.Last(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found on empty feed, got %v", err)
	}
}

func TestWorkloadBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t, newStore(t), "Cathy", "Helen")

	set, err := uc.SetWorkload(ctx, dto.WorkloadInput{Member: "helen", Value: "busy"})
	if err != nil {
		t.Fatalf("set workload: %v", err)
	}
	if set.Member != "Helen" || set.Value != "busy" {
		t.Fatalf("unexpected workload output: %+v", set)
	}
	if _, err := uc.SetWorkload(ctx, dto.WorkloadInput{Member: "Cathy", Value: "melting"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown value, got %v", err)
	}

	board, err := uc.Board(ctx)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(board.Allowed) != 4 || board.Allowed[0] != "light" {
		t.Fatalf("unexpected allowed values: %v", board.Allowed)
	}
	if len(board.Workloads) != 1 || board.Workloads[0].Member != "Helen" {
		t.Fatalf("unexpected board: %+v", board.Workloads)
	}
}

func TestSnapshotRoundTripAcrossModules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	goals, err := ledgerdomain.NewGoalTable([]ledgerdomain.StageGoal{{Name: "Research", Goal: 480, Unit: "hours"}})
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	now := t0
	clk := clock.Func(func() time.Time { return now })
	ledger := ledgerservice.NewLedgerService(clk, staticID("e1"), goals, ledgerout.NewSnapshotStateStore(store), nil, nil)

	if _, _, err := ledger.Start(ctx, "Research", "Cathy"); err != nil {
		t.Fatalf("start: %v", err)
	}
	now = now.Add(90 * time.Minute)
	if _, _, err := ledger.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	uc := newUsecase(t, store, "Cathy", "Helen")
	if _, err := uc.Post(ctx, dto.PostInput{Author: "Cathy", Text: "first pass done"}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := uc.SetWorkload(ctx, dto.WorkloadInput{Member: "Cathy", Value: "steady"}); err != nil {
		t.Fatalf("workload: %v", err)
	}

	doc, err := snapshot.NewFileStore(store.Path()).Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if doc.Hours["research"] != 1.5 {
		t.Fatalf("expected 1.5 research hours, got %v", doc.Hours)
	}
	if len(doc.Chats) != 1 || doc.Chats[0].User != "Cathy" || doc.Chats[0].Text != "first pass done" {
		t.Fatalf("unexpected chats: %+v", doc.Chats)
	}
	if doc.Workloads["Cathy"] != "steady" {
		t.Fatalf("unexpected workloads: %+v", doc.Workloads)
	}
	if doc.Timer != nil {
		t.Fatalf("expected no timer, got %+v", doc.Timer)
	}
}

type staticID string

func (s staticID) New() string { return string(s) }

func TestConcurrentPostsAreAllPersisted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	uc := newUsecase(t, store, "Cathy", "Helen")
	const posts = 20

	var wg sync.WaitGroup
	for n := 0; n < posts; n++ {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Post(ctx, dto.PostInput{Author: "Cathy", Text: fmt.Sprintf("n%d", n)}); err != nil {
				t.Errorf("post %d: %v", n, err)
			}
		}()
	}
	wg.Wait()

	reloaded := newUsecase(t, store, "Cathy", "Helen")
	notes, err := reloaded.List(ctx, dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != posts {
		t.Fatalf("expected %d notes persisted, got %d", posts, len(notes))
	}
	seen := make(map[string]bool, posts)
	for i, note := range notes {
		if note.Seq != i+1 {
			t.Fatalf("note %d has seq %d", i, note.Seq)
		}
		seen[note.Text] = true
	}
	if len(seen) != posts {
		t.Fatalf("expected %d distinct notes, got %d", posts, len(seen))
	}
}
