// Package tfidf implements the term-weighting primitives behind the
// recommendation engine: tokenization, term-frequency and TF-IDF vectors
// over sparse string-keyed maps, and cosine similarity between them.
package tfidf

import "math"

// TermFrequency maps each term to its relative frequency within tokens.
// Values of a non-empty input sum to 1.0; empty input yields an empty map
// so callers never divide by zero.
func TermFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return tf
	}
	for _, tok := range tokens {
		tf[tok]++
	}
	total := float64(len(tokens))
	for tok, count := range tf {
		tf[tok] = count / total
	}
	return tf
}

// InverseDocumentFrequency computes idf(term) = ln(N / df) for every
// distinct term across the tokenized corpus. A term present in every
// document gets 0; terms absent from the corpus simply have no entry
// (map lookup yields 0, i.e. they contribute nothing).
func InverseDocumentFrequency(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, tok := range doc {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	idf := make(map[string]float64, len(df))
	total := float64(len(docs))
	for tok, n := range df {
		idf[tok] = math.Log(total / float64(n))
	}
	return idf
}

// TFIDF weights the token list's term frequencies by the given IDF table.
// Terms unseen in the table contribute weight 0 and are omitted.
func TFIDF(tokens []string, idf map[string]float64) map[string]float64 {
	tf := TermFrequency(tokens)
	out := make(map[string]float64, len(tf))
	for tok, freq := range tf {
		if w, ok := idf[tok]; ok && w != 0 {
			out[tok] = freq * w
		}
	}
	return out
}
