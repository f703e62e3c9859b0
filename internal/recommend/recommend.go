// Package recommend implements the content-based recommendation engine:
// TF-IDF style book vectors, cosine-ranked strategies (personalized,
// similar-to-a-book, trending) and a time-boxed cache of computed lists.
package recommend

// Type identifies a recommendation strategy. It doubles as the cache key
// discriminator, so the set is closed: dispatch switches over it
// exhaustively and anything else is rejected at the boundary.
type Type string

const (
	TypePersonalized Type = "personalized"
	TypeSimilar      Type = "similar"
	TypeTrending     Type = "trending"

	// reserved extension points; accepted in cache rows and tracking
	// calls but never produced by the engine
	TypeFrequentlyBoughtTogether Type = "frequently_bought_together"
	TypeComboSuggestion          Type = "combo_suggestion"
)

func (t Type) Valid() bool {
	switch t {
	case TypePersonalized, TypeSimilar, TypeTrending,
		TypeFrequentlyBoughtTogether, TypeComboSuggestion:
		return true
	}
	return false
}

// Entry is one ranked recommendation. Score is rounded to 4 decimal
// places; personalized/similar scores live in [0,1] (similar can exceed
// 1.0 with bonuses), trending scores are unbounded ranking signals.
type Entry struct {
	BookID int     `json:"bookId"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// DefaultLimit is the result size used when a caller passes limit <= 0.
const DefaultLimit = 8

// Algorithm labels stored alongside cached lists so a consumer can tell
// how a list was produced, in particular when a failure degraded the
// requested strategy to trending.
const (
	AlgorithmProfile          = "tfidf_profile"
	AlgorithmSimilarity       = "tfidf_similarity"
	AlgorithmPopularity       = "popularity_weighted"
	AlgorithmTrendingFallback = "trending_fallback"
)
