package recommend

import "github.com/wichananm65/bookstore-backend/internal/book"

const trendingCandidateLimit = 100

// Trending score weights: purchases dominate, rating is scaled to the
// same magnitude, raw view counts are damped hard.
const (
	purchaseWeight  = 0.5
	ratingScale     = 10
	ratingWeight    = 0.3
	viewCountScale  = 0.0001
	viewCountWeight = 0.2
)

const reasonTrending = "Trending book"

// Trending ranks the most popular active books. The score is a pure
// function of (purchaseCount, averageRating, viewCount), so re-running
// over an unchanged catalog yields an identical ordering. The only empty
// result is an empty catalog.
func (e *Engine) Trending(limit int) ([]Entry, string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	// popularity ordering here is only a prefetch heuristic; the actual
	// ranking below is recomputed
	candidates, err := e.catalog.ListActive(book.Filter{OrderByPopularity: true}, trendingCandidateLimit)
	if err != nil {
		return nil, "", err
	}

	entries := make([]Entry, 0, len(candidates))
	for _, cand := range candidates {
		score := float64(cand.PurchaseCount)*purchaseWeight +
			cand.AverageRating*ratingScale*ratingWeight +
			float64(cand.ViewCount)*viewCountScale*viewCountWeight
		entries = append(entries, Entry{
			BookID: cand.ID,
			Score:  roundScore(score),
			Reason: reasonTrending,
		})
	}
	return sortAndTrim(entries, limit), AlgorithmPopularity, nil
}
