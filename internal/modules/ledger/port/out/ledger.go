package out

import (
	"context"

	"kitchen/internal/modules/ledger/domain"
)

// StateStore loads and mutates the ledger and timer of a workspace.
type StateStore interface {
	Load(ctx context.Context, goals domain.GoalTable) (*domain.Tracker, error)
	// Mutate applies fn to the stored tracker and saves the result while
	// holding the store lock. When fn fails nothing is written.
	Mutate(ctx context.Context, goals domain.GoalTable, fn func(*domain.Tracker) error) (*domain.Tracker, error)
}

type WorkLogQuery struct {
	StageID string
	Limit   int
}

// WorkLog is a queryable projection of completed timer runs.
type WorkLog interface {
	Append(ctx context.Context, entry domain.WorkEntry) error
	List(ctx context.Context, query WorkLogQuery) ([]domain.WorkEntry, error)
}
