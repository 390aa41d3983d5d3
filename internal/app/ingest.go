package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"review_copilot/internal/domain"
	"review_copilot/internal/nlp"
)

// ReviewInput is a raw review as submitted by the caller; derived fields are
// filled in during ingestion.
type ReviewInput struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Date     string `json:"date"`
	Text     string `json:"text"`
}

type IngestionService struct {
	repo domain.ReviewRepository
	fb   fallback
}

func NewIngestionService(r domain.ReviewRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{repo: r, fb: fallback{cache: cache}}
}

// Ingest enriches the submitted reviews with sentiment and topics, then
// persists them all-or-nothing. A duplicate id, either repeated in the batch
// or already stored, rejects the whole batch without mutating anything.
// When the durable store is unreachable the enriched reviews are kept in the
// in-process fallback so reads keep working (degraded, not failed).
func (s *IngestionService) Ingest(ctx context.Context, inputs []ReviewInput) ([]domain.Review, error) {
	if len(inputs) == 0 {
		return []domain.Review{}, nil
	}

	seen := make(map[string]struct{}, len(inputs))
	enriched := make([]domain.Review, 0, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.ID]; dup {
			return nil, fmt.Errorf("review %s repeated in batch: %w", in.ID, domain.ErrDuplicateID)
		}
		seen[in.ID] = struct{}{}
		enriched = append(enriched, domain.Review{
			ID:        in.ID,
			Location:  in.Location,
			Rating:    in.Rating,
			Date:      in.Date,
			Text:      in.Text,
			Sentiment: nlp.ClassifySentiment(in.Text),
			Topics:    nlp.ExtractTopics(in.Text),
		})
	}

	if err := s.repo.InsertBatch(ctx, enriched); err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			return nil, err
		}
		// Storage hiccup: degrade to the in-process copy, but still honor the
		// uniqueness contract against what we have.
		log.Warn().Err(err).Int("count", len(enriched)).
			Msg("store unavailable, keeping reviews in fallback cache only")
		if cached, ok := s.fb.list(ctx); ok {
			for _, rv := range cached {
				if _, dup := seen[rv.ID]; dup {
					return nil, fmt.Errorf("review %s already ingested: %w", rv.ID, domain.ErrDuplicateID)
				}
			}
		}
	}

	s.fb.append(ctx, enriched)
	return enriched, nil
}
