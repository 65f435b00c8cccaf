package out

import (
	"context"

	"kitchen/internal/modules/feed/domain"
)

// FeedStore persists notes and workloads. Members are not stored.
type FeedStore interface {
	Load(ctx context.Context) (*domain.Feed, error)
	// Mutate applies fn to the stored feed and saves the result while
	// holding the store lock. When fn fails nothing is written.
	Mutate(ctx context.Context, fn func(*domain.Feed) error) (*domain.Feed, error)
}
