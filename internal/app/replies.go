package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"review_copilot/internal/adapters/observability"
	"review_copilot/internal/domain"
)

// ReplyService owns the reply cache/fill contract: at most one stored reply
// per review id, and the generator is never invoked when a reply is already
// cached.
type ReplyService struct {
	repo domain.ReviewRepository
	gen  domain.ReplyGenerator
	q    *QueryService
	fb   fallback
}

func NewReplyService(r domain.ReviewRepository, g domain.ReplyGenerator, q *QueryService, cache domain.Cache) *ReplyService {
	return &ReplyService{repo: r, gen: g, q: q, fb: fallback{cache: cache}}
}

// GetOrGenerate returns the review and its suggested reply, generating and
// persisting one if none is stored yet. An empty stored reply counts as "no
// reply yet". A failed write-back is logged but the fresh reply is still
// returned; the only hard failure after the review resolves is total
// generator unavailability.
func (s *ReplyService) GetOrGenerate(ctx context.Context, id string) (domain.Review, string, error) {
	rv, err := s.q.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, "", err
	}

	if rv.SuggestedReply != "" {
		observability.ObserveCache("reply", "hit")
		return rv, rv.SuggestedReply, nil
	}

	reply, err := s.gen.GenerateReply(ctx, rv.Text)
	if err != nil {
		return domain.Review{}, "", fmt.Errorf("reply generator unavailable: %w", err)
	}
	observability.ObserveCache("reply", "fill")

	if err := s.repo.SetReply(ctx, id, reply); err != nil {
		// The caller still gets the reply; only durability suffered.
		log.Warn().Err(err).Str("id", id).Msg("failed to persist generated reply")
	}
	rv.SuggestedReply = reply
	s.fb.upsert(ctx, rv)
	return rv, reply, nil
}

// GetReply returns the stored reply for a review, or ErrNotFound when none
// has been generated yet.
func (s *ReplyService) GetReply(ctx context.Context, id string) (string, error) {
	reply, err := s.repo.GetReply(ctx, id)
	if err == nil {
		return reply, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrNotFound
	}
	log.Warn().Err(err).Str("id", id).Msg("store unavailable, resolving reply from fallback cache")
	if cached, ok := s.fb.find(ctx, id); ok && cached.SuggestedReply != "" {
		return cached.SuggestedReply, nil
	}
	return "", domain.ErrNotFound
}
