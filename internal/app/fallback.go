package app

import (
	"context"

	"review_copilot/internal/domain"
)

const fallbackCacheKey = "reviews:all"

// fallback is the in-process secondary copy of the review corpus. It is
// refreshed on every successful durable read/write and consulted only when
// the durable store reports an error; it never shadows a successful read.
type fallback struct{ cache domain.Cache }

func (f fallback) list(ctx context.Context) ([]domain.Review, bool) {
	if f.cache == nil {
		return nil, false
	}
	var rs []domain.Review
	ok, err := f.cache.Get(ctx, fallbackCacheKey, &rs)
	if err != nil || !ok {
		return nil, false
	}
	return rs, true
}

func (f fallback) find(ctx context.Context, id string) (domain.Review, bool) {
	rs, ok := f.list(ctx)
	if !ok {
		return domain.Review{}, false
	}
	for _, rv := range rs {
		if rv.ID == id {
			return rv, true
		}
	}
	return domain.Review{}, false
}

func (f fallback) replace(ctx context.Context, rs []domain.Review) {
	if f.cache == nil {
		return
	}
	_ = f.cache.Set(ctx, fallbackCacheKey, rs, 0)
}

func (f fallback) append(ctx context.Context, rs []domain.Review) {
	if f.cache == nil {
		return
	}
	cur, _ := f.list(ctx)
	f.replace(ctx, append(cur, rs...))
}

// upsert replaces the cached copy of one review (used after reply updates).
func (f fallback) upsert(ctx context.Context, rv domain.Review) {
	if f.cache == nil {
		return
	}
	cur, ok := f.list(ctx)
	if !ok {
		f.replace(ctx, []domain.Review{rv})
		return
	}
	for i := range cur {
		if cur[i].ID == rv.ID {
			cur[i] = rv
			f.replace(ctx, cur)
			return
		}
	}
	f.replace(ctx, append(cur, rv))
}
