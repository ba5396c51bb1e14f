package similarity

import (
	"math"
	"sort"

	"github.com/soos-lab/reflectd/pkg/domain/model"
)

// Cosine returns dot(a,b) / (|a||b|). Vectors are not assumed to be
// normalized. A zero-norm operand yields 0. Only the common prefix is used
// when lengths differ; Rank never passes such pairs.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// wellFormed reports whether v can be compared against a query of length n
func wellFormed(v []float64, n int) bool {
	if len(v) == 0 || len(v) != n {
		return false
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Rank scores every well-formed candidate except excludeID against query and
// returns the top limit entries by descending score. Ties keep candidate order.
func Rank(query []float64, candidates []*model.Embedding, excludeID string, limit int) []model.SimilarEntry {
	scored := make([]model.SimilarEntry, 0, len(candidates))
	if limit <= 0 || !wellFormed(query, len(query)) {
		return scored
	}

	for _, c := range candidates {
		if c == nil || c.EntryID == excludeID || !wellFormed(c.Vector, len(query)) {
			continue
		}
		scored = append(scored, model.SimilarEntry{
			EntryID: c.EntryID,
			Score:   Cosine(query, c.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
