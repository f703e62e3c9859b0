package recommend

import (
	"github.com/wichananm65/bookstore-backend/internal/book"
	"github.com/wichananm65/bookstore-backend/internal/tfidf"
)

const similarCandidateLimit = 50

// Weighting of the similar-to score. The total can exceed 1.0 when both
// bonuses apply on top of a high title similarity; the score is a ranking
// signal, not a probability, so it is deliberately left unbounded.
const (
	titleSimilarityWeight = 0.5
	sameCategoryBonus     = 0.3
	sameAuthorBonus       = 0.2

	// title similarity above this threshold earns the "Similar title"
	// reason when no category/author bonus applies
	similarTitleThreshold = 0.5
)

const (
	reasonSameCategoryAuthor = "Same category and author"
	reasonSameCategory       = "Same category"
	reasonSameAuthor         = "Same author"
	reasonSimilarTitle       = "Similar title"
	reasonSimilarBook        = "Similar book"
)

// Similar ranks active books against a source book by content similarity
// plus category/author bonuses. A missing source yields an empty result
// (recommendations are best-effort; the caller decides whether that is an
// error). Zero candidates fall back to the trending list.
func (e *Engine) Similar(sourceBookID int, limit int) ([]Entry, string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	source, err := e.catalog.GetByID(sourceBookID)
	if err != nil {
		if err == book.ErrNotFound {
			return []Entry{}, AlgorithmSimilarity, nil
		}
		return nil, "", err
	}

	sourceTF := tfidf.TermFrequency(ContentTokens(source))

	// candidates share the source's category OR author; a source with
	// neither constraint matches any active book
	filter := book.Filter{
		ExcludeIDs: []int{source.ID},
		CategoryID: source.CategoryID(),
		AuthorID:   source.AuthorID(),
	}
	candidates, err := e.catalog.ListActive(filter, similarCandidateLimit)
	if err != nil {
		return nil, "", err
	}
	if len(candidates) == 0 {
		return e.Trending(limit)
	}

	entries := make([]Entry, 0, len(candidates))
	for _, cand := range candidates {
		titleSim := tfidf.CosineSimilarity(sourceTF, tfidf.TermFrequency(ContentTokens(cand)))

		sameCategory := source.CategoryID() != 0 && cand.CategoryID() == source.CategoryID()
		sameAuthor := source.AuthorID() != 0 && cand.AuthorID() == source.AuthorID()

		score := titleSimilarityWeight * titleSim
		if sameCategory {
			score += sameCategoryBonus
		}
		if sameAuthor {
			score += sameAuthorBonus
		}

		entries = append(entries, Entry{
			BookID: cand.ID,
			Score:  roundScore(score),
			Reason: similarReason(sameCategory, sameAuthor, titleSim),
		})
	}
	return sortAndTrim(entries, limit), AlgorithmSimilarity, nil
}

func similarReason(sameCategory, sameAuthor bool, titleSim float64) string {
	switch {
	case sameCategory && sameAuthor:
		return reasonSameCategoryAuthor
	case sameCategory:
		return reasonSameCategory
	case sameAuthor:
		return reasonSameAuthor
	case titleSim > similarTitleThreshold:
		return reasonSimilarTitle
	default:
		return reasonSimilarBook
	}
}
