package search

import (
	"math"
	"sort"

	"review_copilot/internal/domain"
)

// Document is one corpus entry for similarity ranking.
type Document struct {
	ID   string
	Text string
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 if either vector has zero magnitude. For the normalized TF-IDF
// vectors produced here it reduces to a dot product, but the full form keeps
// the function usable on raw vectors too.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// TopSimilar ranks the corpus against the document with the given id and
// returns the ids of the min(k, len(docs)-1) most similar documents, best
// first, never including the query itself.
//
// A corpus smaller than two documents yields an empty result; an unknown
// query id is ErrNotFound. Ordering among exact score ties follows the
// stable sort over corpus order and is not otherwise specified.
func TopSimilar(docs []Document, queryID string, k int) ([]string, error) {
	if len(docs) < 2 {
		return []string{}, nil
	}
	queryIdx := -1
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
		if d.ID == queryID {
			queryIdx = i
		}
	}
	if queryIdx < 0 {
		return nil, domain.ErrNotFound
	}

	vectors := Vectorize(texts)
	scores := make([]float64, len(docs))
	for i := range docs {
		scores[i] = CosineSimilarity(vectors[queryIdx], vectors[i])
	}
	scores[queryIdx] = -1 // force self below every other candidate

	order := make([]int, len(docs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if k > len(docs)-1 {
		k = len(docs) - 1
	}
	out := make([]string, 0, k)
	for _, idx := range order[:k] {
		out = append(out, docs[idx].ID)
	}
	return out, nil
}
