package search_test

import (
	"errors"
	"math"
	"testing"

	"review_copilot/internal/domain"
	"review_copilot/internal/search"
)

func TestCosineSimilarity(t *testing.T) {
	if got := search.CosineSimilarity([]float64{1, 0}, []float64{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors: got %f, want 1", got)
	}
	if got := search.CosineSimilarity([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Fatalf("orthogonal vectors: got %f, want 0", got)
	}
	if got := search.CosineSimilarity([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Fatalf("zero magnitude: got %f, want 0", got)
	}
	if got := search.CosineSimilarity([]float64{1}, []float64{1, 2}); got != 0 {
		t.Fatalf("length mismatch: got %f, want 0", got)
	}
}

func TestTopSimilar_TinyCorpus(t *testing.T) {
	out, err := search.TopSimilar([]search.Document{{ID: "only", Text: "hello world"}}, "only", 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("1-review corpus must yield empty result, got %v", out)
	}
}

func TestTopSimilar_UnknownID(t *testing.T) {
	docs := []search.Document{
		{ID: "a", Text: "alpha"},
		{ID: "b", Text: "beta"},
	}
	if _, err := search.TopSimilar(docs, "ghost", 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTopSimilar_RanksNearDuplicateFirst(t *testing.T) {
	docs := []search.Document{
		{ID: "plumbing1", Text: "the plumber fixed the leaking pipe quickly, excellent plumbing work"},
		{ID: "plumbing2", Text: "excellent plumbing work, the plumber fixed our leaking pipe"},
		{ID: "bakery", Text: "delicious croissants and fresh bread every single morning"},
		{ID: "garage", Text: "car repair took forever and cost a fortune"},
	}
	out, err := search.TopSimilar(docs, "plumbing1", 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 ids, got %v", out)
	}
	if out[0] != "plumbing2" {
		t.Fatalf("expected plumbing2 as closest match, got %v", out)
	}
	for _, id := range out {
		if id == "plumbing1" {
			t.Fatalf("query review must be excluded from its own ranking: %v", out)
		}
	}
}

func TestTopSimilar_CapsAtCorpusSizeMinusOne(t *testing.T) {
	docs := []search.Document{
		{ID: "a", Text: "green apples taste great"},
		{ID: "b", Text: "red apples taste great"},
	}
	out, err := search.TopSimilar(docs, "a", 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0] != "b" {
		t.Fatalf("expected exactly [b], got %v", out)
	}
}

func TestVectorize_NormalizedVectors(t *testing.T) {
	vecs := search.Vectorize([]string{
		"fast friendly service",
		"slow rude service",
	})
	for i, v := range vecs {
		var sum float64
		for _, x := range v {
			sum += x * x
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("vector %d not L2-normalized (|v|^2 = %f)", i, sum)
		}
	}
}
