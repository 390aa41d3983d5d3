package domain

import "errors"

// Sentiment labels derived at ingestion time.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// TopicGeneral is the fallback topic when no keyword matches.
const TopicGeneral = "general"

var (
	ErrNotFound    = errors.New("review not found")
	ErrDuplicateID = errors.New("duplicate review id")
)

// Review is one piece of customer feedback. ID is caller-supplied and
// immutable. Sentiment and Topics are computed once at ingestion and never
// recomputed. SuggestedReply stays empty until the reply orchestrator fills it.
type Review struct {
	ID             string   `json:"id"`
	Location       string   `json:"location"`
	Rating         int      `json:"rating"`
	Date           string   `json:"date"` // stored verbatim, no parsing
	Text           string   `json:"text"`
	Sentiment      string   `json:"sentiment"`
	Topics         []string `json:"topics"`
	SuggestedReply string   `json:"suggested_reply,omitempty"`
}
