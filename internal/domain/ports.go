package domain

import "context"

type ReviewRepository interface {
	// Write paths
	Insert(ctx context.Context, r Review) error
	// InsertBatch persists all reviews in a single transaction; any duplicate
	// id (within the batch or against stored rows) rolls back the whole batch.
	InsertBatch(ctx context.Context, rs []Review) error
	SetReply(ctx context.Context, id, reply string) error

	// Read paths
	Get(ctx context.Context, id string) (Review, error)
	ListAll(ctx context.Context) ([]Review, error)
	GetReply(ctx context.Context, id string) (string, error)
}

// ReplyGenerator drafts a reply for a review text. Implementations absorb
// their own internal failures into a fixed fallback reply; an error is
// returned only when the collaborator is entirely unavailable.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, reviewText string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
