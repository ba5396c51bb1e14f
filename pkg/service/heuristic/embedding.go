package heuristic

import (
	"math"
	"strings"
	"unicode/utf16"

	"github.com/soos-lab/reflectd/pkg/domain/model"
)

// Embed returns a deterministic, L2-normalized vector of the given dimension.
// Each UTF-16 code unit of the lower-cased text adds (code mod 31)/31 into
// slot i mod dimension, matching the vectors the web client computes. It is a
// stand-in for a semantic embedding that only guarantees determinism and a
// fixed length. A non-positive dimension uses model.DefaultEmbeddingDimension.
func Embed(text string, dimension int) []float64 {
	if dimension <= 0 {
		dimension = model.DefaultEmbeddingDimension
	}

	vec := make([]float64, dimension)
	for i, c := range utf16.Encode([]rune(strings.ToLower(text))) {
		vec[i%dimension] += float64(c%31) / 31
	}

	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
