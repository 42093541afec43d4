package analysis

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Retriever ranks playbook chunks by term-frequency cosine similarity.
type Retriever struct {
	chunks  []string
	vectors []termVector
}

type termVector struct {
	counts map[string]float64
	norm   float64
}

// NewRetriever indexes chunks for similarity search.
func NewRetriever(chunks []string) *Retriever {
	r := &Retriever{
		chunks:  chunks,
		vectors: make([]termVector, len(chunks)),
	}
	for i, chunk := range chunks {
		r.vectors[i] = vectorize(chunk)
	}
	return r
}

// TopK returns up to k chunks most similar to query, best first.
// Ties keep chunk order.
func (r *Retriever) TopK(query string, k int) []string {
	if k <= 0 || len(r.chunks) == 0 {
		return nil
	}

	q := vectorize(query)
	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(r.chunks))
	for i, v := range r.vectors {
		ranked[i] = scored{index: i, score: cosine(q, v)}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	top := make([]string, k)
	for i := range k {
		top[i] = r.chunks[ranked[i].index]
	}
	return top
}

// Tokenize lowercases text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func vectorize(text string) termVector {
	counts := make(map[string]float64)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	var sum float64
	for _, c := range counts {
		sum += c * c
	}
	return termVector{counts: counts, norm: math.Sqrt(sum)}
}

func cosine(a, b termVector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	small, large := a.counts, b.counts
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot float64
	for term, c := range small {
		dot += c * large[term]
	}
	return dot / (a.norm * b.norm)
}
