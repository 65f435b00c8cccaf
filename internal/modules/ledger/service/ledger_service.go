package service

import (
	"context"
	"errors"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"kitchen/internal/modules/ledger/domain"
	ledgerout "kitchen/internal/modules/ledger/port/out"
	"kitchen/internal/platform/clock"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/id"
	"kitchen/internal/platform/logging"
)

type LedgerService struct {
	clock   clock.Clock
	idGen   id.Generator
	goals   domain.GoalTable
	store   ledgerout.StateStore
	workLog ledgerout.WorkLog
	logger  hclog.Logger
}

func NewLedgerService(clock clock.Clock, idGen id.Generator, goals domain.GoalTable, store ledgerout.StateStore, workLog ledgerout.WorkLog, logger hclog.Logger) *LedgerService {
	return &LedgerService{
		clock:   clock,
		idGen:   idGen,
		goals:   goals,
		store:   store,
		workLog: workLog,
		logger:  logging.OrNull(logger).Named("ledger"),
	}
}

func (s *LedgerService) Goals() domain.GoalTable { return s.goals }

func (s *LedgerService) Now() time.Time { return s.clock.Now() }

// Current loads the persisted tracker.
func (s *LedgerService) Current(ctx context.Context) (*domain.Tracker, error) {
	return s.store.Load(ctx, s.goals)
}

func (s *LedgerService) Start(ctx context.Context, stageName, author string) (*domain.Tracker, domain.Stage, error) {
	now := s.clock.Now()
	var stage domain.Stage
	next, err := s.store.Mutate(ctx, s.goals, func(tracker *domain.Tracker) error {
		var err error
		stage, err = tracker.Start(stageName, author, now)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			s.logger.Error("persist timer start failed", "stage", stageName, "error", err)
		}
		return nil, domain.Stage{}, err
	}
	s.logger.Info("timer started", "stage", stage.ID, "author", next.Timer.Author)
	return next, stage, nil
}

func (s *LedgerService) Stop(ctx context.Context) (*domain.Tracker, domain.WorkEntry, error) {
	now := s.clock.Now()
	var entry domain.WorkEntry
	next, err := s.store.Mutate(ctx, s.goals, func(tracker *domain.Tracker) error {
		stopped, err := tracker.Stop(now)
		if err != nil {
			return err
		}
		entry = stopped
		entry.ID = s.idGen.New()
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			s.logger.Error("persist timer stop failed", "stage", entry.StageID, "error", err)
		}
		return nil, domain.WorkEntry{}, err
	}
	s.logger.Info("timer stopped", "stage", entry.StageID, "hours", entry.Hours, "total", next.HoursFor(entry.StageID))

	// The snapshot is authoritative; the work log is a best-effort projection.
	if s.workLog != nil {
		if err := s.workLog.Append(ctx, entry); err != nil {
			s.logger.Warn("work log append failed", "entry", entry.ID, "error", err)
		}
	}
	return next, entry, nil
}

func (s *LedgerService) Reset(ctx context.Context) (domain.Timer, error) {
	var discarded domain.Timer
	_, err := s.store.Mutate(ctx, s.goals, func(tracker *domain.Tracker) error {
		var err error
		discarded, err = tracker.Reset()
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			s.logger.Error("persist timer reset failed", "stage", discarded.StageID, "error", err)
		}
		return domain.Timer{}, err
	}
	s.logger.Info("timer reset", "stage", discarded.StageID, "discarded", s.clock.Now().Sub(discarded.StartedAt).String())
	return discarded, nil
}

func (s *LedgerService) ClearLedger(ctx context.Context, stageName string) (*domain.Tracker, error) {
	next, err := s.store.Mutate(ctx, s.goals, func(tracker *domain.Tracker) error {
		return tracker.ClearLedger(stageName)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			s.logger.Error("persist ledger clear failed", "stage", stageName, "error", err)
		}
		return nil, err
	}
	s.logger.Info("ledger cleared", "stage", stageName)
	return next, nil
}

func (s *LedgerService) History(ctx context.Context, stageName string, limit int) ([]domain.WorkEntry, error) {
	query := ledgerout.WorkLogQuery{Limit: limit}
	if stageName != "" {
		stage, err := s.goals.Lookup(stageName)
		if err != nil {
			return nil, err
		}
		query.StageID = stage.ID
	}
	if s.workLog == nil {
		return []domain.WorkEntry{}, nil
	}
	return s.workLog.List(ctx, query)
}
