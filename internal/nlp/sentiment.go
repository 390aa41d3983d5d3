package nlp

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"review_copilot/internal/domain"
)

// Fixed VADER thresholds; compound >= 0.05 is positive, <= -0.05 negative.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// ClassifySentiment maps review text to positive/negative/neutral using the
// VADER compound polarity score. Pure function; empty text is neutral.
func ClassifySentiment(text string) string {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral
	}
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	compound := sentitext.PolarityScore(parsed).Compound
	switch {
	case compound >= positiveThreshold:
		return domain.SentimentPositive
	case compound <= negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
