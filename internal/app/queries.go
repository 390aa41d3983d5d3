package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"review_copilot/internal/domain"
)

type QueryService struct {
	repo domain.ReviewRepository
	fb   fallback
}

func NewQueryService(r domain.ReviewRepository, cache domain.Cache) *QueryService {
	return &QueryService{repo: r, fb: fallback{cache: cache}}
}

// ListReviews returns every persisted review. The durable store is the
// source of truth; its result refreshes the fallback copy. Only a storage
// error switches reads over to the fallback.
func (s *QueryService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	rs, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, serving reviews from fallback cache")
		if cached, ok := s.fb.list(ctx); ok {
			return cached, nil
		}
		return []domain.Review{}, nil
	}
	s.fb.replace(ctx, rs)
	return rs, nil
}

// GetReview resolves one review by id. A durable "not found" is a definitive
// answer, not a degradation, so the fallback is consulted only on storage
// errors.
func (s *QueryService) GetReview(ctx context.Context, id string) (domain.Review, error) {
	rv, err := s.repo.Get(ctx, id)
	if err == nil {
		return rv, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Review{}, domain.ErrNotFound
	}
	log.Warn().Err(err).Str("id", id).Msg("store unavailable, resolving review from fallback cache")
	if cached, ok := s.fb.find(ctx, id); ok {
		return cached, nil
	}
	return domain.Review{}, domain.ErrNotFound
}
