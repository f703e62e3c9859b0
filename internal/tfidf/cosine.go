package tfidf

import "math"

// CosineSimilarity returns the cosine of the angle between two sparse
// non-negative term-weight vectors: dot(a,b) / (|a|·|b|), in [0,1].
// Returns exactly 0 when either vector has zero norm. Symmetric in its
// arguments.
func CosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
