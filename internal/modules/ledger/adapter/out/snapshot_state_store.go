package out

import (
	"context"
	"fmt"

	"kitchen/internal/modules/ledger/domain"
	ledgerout "kitchen/internal/modules/ledger/port/out"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/snapshot"
)

// SnapshotStateStore keeps hours and the timer in the shared workspace
// snapshot, leaving chats and workloads untouched. Hours are keyed by
// stage ID.
type SnapshotStateStore struct {
	snapshots *snapshot.FileStore
}

func NewSnapshotStateStore(snapshots *snapshot.FileStore) ledgerout.StateStore {
	return &SnapshotStateStore{snapshots: snapshots}
}

func (s *SnapshotStateStore) Load(ctx context.Context, goals domain.GoalTable) (*domain.Tracker, error) {
	doc, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return decodeTracker(doc, goals)
}

func (s *SnapshotStateStore) Mutate(ctx context.Context, goals domain.GoalTable, fn func(*domain.Tracker) error) (*domain.Tracker, error) {
	var tracker *domain.Tracker
	err := s.snapshots.Update(ctx, func(doc *snapshot.Document) error {
		decoded, err := decodeTracker(*doc, goals)
		if err != nil {
			return err
		}
		if err := fn(decoded); err != nil {
			return err
		}
		encodeTracker(decoded, doc)
		tracker = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tracker, nil
}

func decodeTracker(doc snapshot.Document, goals domain.GoalTable) (*domain.Tracker, error) {
	tracker := domain.NewTracker(goals)
	for stageID, hours := range doc.Hours {
		if hours < 0 {
			return nil, fmt.Errorf("%w: snapshot has negative hours for %s", apperrors.ErrPersistence, stageID)
		}
		tracker.Hours[stageID] = hours
	}
	if doc.Timer != nil {
		if doc.Timer.StartedAt.IsZero() || doc.Timer.Stage == "" {
			return nil, fmt.Errorf("%w: snapshot timer is incomplete", apperrors.ErrPersistence)
		}
		tracker.Timer = domain.Timer{
			Running:   true,
			StageID:   doc.Timer.Stage,
			Author:    doc.Timer.Author,
			StartedAt: doc.Timer.StartedAt,
		}
	}
	return tracker, nil
}

func encodeTracker(tracker *domain.Tracker, doc *snapshot.Document) {
	hours := make(map[string]float64, len(tracker.Hours))
	for stageID, value := range tracker.Hours {
		hours[stageID] = value
	}
	doc.Hours = hours
	doc.Timer = nil
	if tracker.Timer.Running {
		doc.Timer = &snapshot.Timer{
			Stage:     tracker.Timer.StageID,
			Author:    tracker.Timer.Author,
			StartedAt: tracker.Timer.StartedAt,
		}
	}
}
