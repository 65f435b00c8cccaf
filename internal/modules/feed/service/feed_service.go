package service

import (
	"context"
	"errors"

	hclog "github.com/hashicorp/go-hclog"

	"kitchen/internal/modules/feed/domain"
	feedout "kitchen/internal/modules/feed/port/out"
	"kitchen/internal/platform/clock"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/logging"
)

type FeedService struct {
	clock   clock.Clock
	members []string
	store   feedout.FeedStore
	logger  hclog.Logger
}

func NewFeedService(clock clock.Clock, members []string, store feedout.FeedStore, logger hclog.Logger) *FeedService {
	return &FeedService{
		clock:   clock,
		members: append([]string(nil), members...),
		store:   store,
		logger:  logging.OrNull(logger).Named("feed"),
	}
}

func (s *FeedService) Members() []string {
	return append([]string(nil), s.members...)
}

func (s *FeedService) Current(ctx context.Context) (*domain.Feed, error) {
	feed, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	feed.Members = s.Members()
	return feed, nil
}

func (s *FeedService) Post(ctx context.Context, author, text string) (domain.Note, error) {
	now := s.clock.Now()
	var note domain.Note
	_, err := s.store.Mutate(ctx, func(feed *domain.Feed) error {
		feed.Members = s.Members()
		var err error
		note, err = feed.Post(author, text, now)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			s.logger.Error("persist note failed", "author", author, "error", err)
		}
		return domain.Note{}, err
	}
	s.logger.Info("note posted", "seq", note.Seq, "author", note.Author)
	return note, nil
}

func (s *FeedService) SetWorkload(ctx context.Context, member string, value domain.Workload) (domain.MemberWorkload, error) {
	var set domain.MemberWorkload
	_, err := s.store.Mutate(ctx, func(feed *domain.Feed) error {
		feed.Members = s.Members()
		var err error
		set, err = feed.SetWorkload(member, value)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			s.logger.Error("persist workload failed", "member", member, "error", err)
		}
		return domain.MemberWorkload{}, err
	}
	s.logger.Info("workload set", "member", set.Member, "value", string(set.Workload))
	return set, nil
}
