package search

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// maxVocabulary caps the TF-IDF vocabulary at the highest-frequency terms.
const maxVocabulary = 5000

var tokenPattern = regexp.MustCompile(`[a-z0-9_]{2,}`)

// English stop-words dropped before n-gram construction.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "a": {}, "for": {}, "is": {}, "on": {}, "with": {},
	"as": {}, "by": {}, "at": {}, "from": {}, "that": {}, "this": {}, "these": {}, "those": {}, "it": {}, "its": {},
	"an": {}, "be": {}, "or": {}, "are": {}, "was": {}, "were": {}, "been": {}, "being": {}, "am": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "should": {}, "could": {}, "has": {}, "have": {}, "had": {},
	"but": {}, "not": {}, "no": {}, "nor": {}, "so": {}, "if": {}, "than": {}, "then": {}, "there": {}, "here": {},
	"when": {}, "where": {}, "which": {}, "who": {}, "whom": {}, "what": {}, "why": {}, "how": {}, "all": {},
	"any": {}, "both": {}, "each": {}, "few": {}, "more": {}, "most": {}, "other": {}, "some": {}, "such": {},
	"only": {}, "own": {}, "same": {}, "too": {}, "very": {}, "can": {}, "just": {}, "into": {}, "over": {},
	"under": {}, "again": {}, "further": {}, "once": {}, "about": {}, "against": {}, "between": {}, "through": {},
	"during": {}, "before": {}, "after": {}, "above": {}, "below": {}, "up": {}, "down": {}, "out": {}, "off": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "he": {}, "him": {}, "his": {}, "she": {}, "her": {},
	"hers": {}, "we": {}, "us": {}, "our": {}, "ours": {}, "you": {}, "your": {}, "yours": {}, "i": {}, "me": {},
	"my": {}, "mine": {}, "also": {}, "because": {}, "while": {}, "until": {},
}

// terms tokenizes a document into unigrams and bigrams: lowercase, word
// tokens of at least two characters, stop-words removed, bigrams formed from
// the surviving token sequence.
func terms(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, skip := stopwords[tok]; !skip {
			kept = append(kept, tok)
		}
	}
	out := make([]string, 0, len(kept)*2)
	out = append(out, kept...)
	for i := 0; i+1 < len(kept); i++ {
		out = append(out, kept[i]+" "+kept[i+1])
	}
	return out
}

// Vectorize builds L2-normalized TF-IDF vectors for the corpus.
//
// The vocabulary is the corpus's unigram+bigram terms, capped at the 5000
// most frequent (ties broken alphabetically). IDF uses the smoothed form
// ln((1+n)/(1+df)) + 1, so terms present in every document still carry
// weight.
func Vectorize(docs []string) [][]float64 {
	docTerms := make([][]string, len(docs))
	corpusCount := map[string]int{}
	docFreq := map[string]int{}
	for i, d := range docs {
		ts := terms(d)
		docTerms[i] = ts
		seen := map[string]struct{}{}
		for _, t := range ts {
			corpusCount[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	vocabTerms := make([]string, 0, len(corpusCount))
	for t := range corpusCount {
		vocabTerms = append(vocabTerms, t)
	}
	sort.Slice(vocabTerms, func(i, j int) bool {
		a, b := vocabTerms[i], vocabTerms[j]
		if corpusCount[a] != corpusCount[b] {
			return corpusCount[a] > corpusCount[b]
		}
		return a < b
	})
	if len(vocabTerms) > maxVocabulary {
		vocabTerms = vocabTerms[:maxVocabulary]
	}

	index := make(map[string]int, len(vocabTerms))
	for i, t := range vocabTerms {
		index[t] = i
	}
	n := float64(len(docs))
	idf := make([]float64, len(vocabTerms))
	for i, t := range vocabTerms {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, ts := range docTerms {
		vec := make([]float64, len(vocabTerms))
		for _, t := range ts {
			if j, ok := index[t]; ok {
				vec[j] += idf[j] // accumulate tf * idf
			}
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
