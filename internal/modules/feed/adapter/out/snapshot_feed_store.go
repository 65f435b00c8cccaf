package out

import (
	"context"

	"kitchen/internal/modules/feed/domain"
	feedout "kitchen/internal/modules/feed/port/out"
	"kitchen/internal/platform/snapshot"
)

// SnapshotFeedStore keeps chats and workloads in the shared workspace
// snapshot, leaving hours and the timer untouched.
type SnapshotFeedStore struct {
	snapshots *snapshot.FileStore
}

func NewSnapshotFeedStore(snapshots *snapshot.FileStore) feedout.FeedStore {
	return &SnapshotFeedStore{snapshots: snapshots}
}

func (s *SnapshotFeedStore) Load(ctx context.Context) (*domain.Feed, error) {
	doc, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return decodeFeed(doc), nil
}

func (s *SnapshotFeedStore) Mutate(ctx context.Context, fn func(*domain.Feed) error) (*domain.Feed, error) {
	var feed *domain.Feed
	err := s.snapshots.Update(ctx, func(doc *snapshot.Document) error {
		decoded := decodeFeed(*doc)
		if err := fn(decoded); err != nil {
			return err
		}
		encodeFeed(decoded, doc)
		feed = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}

func decodeFeed(doc snapshot.Document) *domain.Feed {
	feed := &domain.Feed{
		Notes:     make([]domain.Note, 0, len(doc.Chats)),
		Workloads: make(map[string]domain.Workload, len(doc.Workloads)),
	}
	for i, chat := range doc.Chats {
		feed.Notes = append(feed.Notes, domain.Note{
			Seq:      i + 1,
			Author:   chat.User,
			Text:     chat.Text,
			PostedAt: chat.PostedAt,
		})
	}
	for member, value := range doc.Workloads {
		feed.Workloads[member] = domain.Workload(value)
	}
	return feed
}

func encodeFeed(feed *domain.Feed, doc *snapshot.Document) {
	chats := make([]snapshot.Chat, 0, len(feed.Notes))
	for _, note := range feed.Notes {
		chats = append(chats, snapshot.Chat{User: note.Author, Text: note.Text, PostedAt: note.PostedAt})
	}
	workloads := make(map[string]string, len(feed.Workloads))
	for member, value := range feed.Workloads {
		workloads[member] = string(value)
	}
	doc.Chats = chats
	doc.Workloads = workloads
}
