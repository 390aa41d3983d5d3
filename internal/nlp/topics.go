package nlp

import (
	"regexp"
	"strings"

	"review_copilot/internal/domain"
)

type topicEntry struct {
	label    string
	keywords []string
}

// Topic dictionaries. Slice order is the enumeration order, so extracted
// topics come back in a stable order regardless of where keywords appear in
// the text.
var topicTable = []topicEntry{
	{"professionalism", []string{"professional", "professionalism", "expert", "expertise", "skilled", "competent"}},
	{"efficiency", []string{"efficient", "efficiency", "quick", "fast", "timely", "prompt", "speedy"}},
	{"quality", []string{"quality", "excellent", "perfect", "great", "outstanding", "superb", "top-notch"}},
	{"customer_service", []string{"service", "helpful", "friendly", "courteous", "attentive", "responsive"}},
	{"communication", []string{"communication", "communicate", "informed", "updates", "clear", "transparent"}},
	{"timeliness", []string{"on time", "punctual", "deadline", "schedule", "timely"}},
	{"price", []string{"price", "cost", "expensive", "cheap", "affordable", "value", "worth"}},
	{"cleanliness", []string{"clean", "cleanliness", "tidy", "neat", "spotless", "organized"}},
	{"reliability", []string{"reliable", "dependable", "trustworthy", "consistent", "trust"}},
	{"experience", []string{"experience", "knowledgeable", "seasoned", "veteran"}},
}

// Compiled whole-word patterns per topic, in table order. Word boundaries
// reject substring hits inside longer words ("pricey" does not match "price").
var topicPatterns = func() [][]*regexp.Regexp {
	out := make([][]*regexp.Regexp, len(topicTable))
	for i, e := range topicTable {
		pats := make([]*regexp.Regexp, len(e.keywords))
		for j, kw := range e.keywords {
			pats[j] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		out[i] = pats
	}
	return out
}()

// ExtractTopics returns the topic labels whose keywords appear as whole words
// (or whole phrases) in the text, case-insensitively, without duplicates.
// When nothing matches it returns exactly ["general"], so the result is never
// empty.
func ExtractTopics(text string) []string {
	lowered := strings.ToLower(text)
	var matched []string
	for i, e := range topicTable {
		for _, pat := range topicPatterns[i] {
			if pat.MatchString(lowered) {
				matched = append(matched, e.label)
				break // one hit is enough for this topic
			}
		}
	}
	if len(matched) == 0 {
		return []string{domain.TopicGeneral}
	}
	return matched
}
