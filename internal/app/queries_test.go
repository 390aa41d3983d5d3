package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"review_copilot/internal/adapters/memcache"
	"review_copilot/internal/app"
	"review_copilot/internal/domain"
)

// ---- fakes ----

var errStoreDown = errors.New("store down")

type fakeRepo struct {
	mu         sync.Mutex
	reviews    map[string]domain.Review
	order      []string
	failReads  bool
	failWrites bool
}

func newFakeRepo(rs ...domain.Review) *fakeRepo {
	f := &fakeRepo{reviews: map[string]domain.Review{}}
	for _, rv := range rs {
		f.reviews[rv.ID] = rv
		f.order = append(f.order, rv.ID)
	}
	return f
}

func (f *fakeRepo) Insert(ctx context.Context, rv domain.Review) error {
	return f.InsertBatch(ctx, []domain.Review{rv})
}

func (f *fakeRepo) InsertBatch(_ context.Context, rs []domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	for _, rv := range rs {
		if _, dup := f.reviews[rv.ID]; dup {
			return domain.ErrDuplicateID
		}
	}
	for _, rv := range rs {
		f.reviews[rv.ID] = rv
		f.order = append(f.order, rv.ID)
	}
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return domain.Review{}, errStoreDown
	}
	rv, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errStoreDown
	}
	out := make([]domain.Review, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.reviews[id])
	}
	return out, nil
}

func (f *fakeRepo) SetReply(_ context.Context, id, reply string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	rv, ok := f.reviews[id]
	if !ok {
		return domain.ErrNotFound
	}
	rv.SuggestedReply = reply
	f.reviews[id] = rv
	return nil
}

func (f *fakeRepo) GetReply(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return "", errStoreDown
	}
	rv, ok := f.reviews[id]
	if !ok || rv.SuggestedReply == "" {
		return "", domain.ErrNotFound
	}
	return rv.SuggestedReply, nil
}

type fakeGen struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (g *fakeGen) GenerateReply(context.Context, string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeGen) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func review(id, text string) domain.Review {
	return domain.Review{ID: id, Location: "NY", Rating: 4, Date: "2025-10-04",
		Text: text, Sentiment: domain.SentimentNeutral, Topics: []string{domain.TopicGeneral}}
}

// ---- tests ----

func TestListReviews_StoreHealthy_RefreshesFallback(t *testing.T) {
	repo := newFakeRepo(review("r1", "fine"), review("r2", "ok"))
	cache := memcache.New()
	q := app.NewQueryService(repo, cache)

	rs, err := q.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs) != 2 || rs[0].ID != "r1" || rs[1].ID != "r2" {
		t.Fatalf("unexpected reviews: %+v", rs)
	}

	// Store goes down; the fallback copy keeps the read path alive.
	repo.failReads = true
	rs2, err := q.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs2) != 2 || rs2[0].ID != "r1" {
		t.Fatalf("expected fallback copy, got %+v", rs2)
	}
}

func TestListReviews_StoreDownNoFallback_ReturnsEmpty(t *testing.T) {
	repo := newFakeRepo(review("r1", "fine"))
	repo.failReads = true
	q := app.NewQueryService(repo, memcache.New())

	rs, err := q.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("expected empty list, got %+v", rs)
	}
}

func TestGetReview_NotFoundIsDefinitive(t *testing.T) {
	repo := newFakeRepo(review("r1", "fine"))
	cache := memcache.New()
	q := app.NewQueryService(repo, cache)

	// populate the fallback
	if _, err := q.ListReviews(context.Background()); err != nil {
		t.Fatalf("err: %v", err)
	}

	// a healthy store saying "not found" must not be shadowed by the fallback
	if _, err := q.GetReview(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetReview_FallbackOnStorageError(t *testing.T) {
	repo := newFakeRepo(review("r1", "fine"))
	cache := memcache.New()
	q := app.NewQueryService(repo, cache)

	if _, err := q.ListReviews(context.Background()); err != nil {
		t.Fatalf("err: %v", err)
	}

	repo.failReads = true
	rv, err := q.GetReview(context.Background(), "r1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rv.ID != "r1" {
		t.Fatalf("unexpected review: %+v", rv)
	}
}
