package recommend

import (
	"github.com/wichananm65/bookstore-backend/internal/book"
	"github.com/wichananm65/bookstore-backend/internal/tfidf"
)

const (
	personalizedCandidateLimit = 100
	recentOrderLimit           = 10
)

const reasonPersonalized = "Based on your interests"

// Personalized ranks unseen active books against the averaged content
// profile of the customer's wishlist and recent delivered-order books.
// A customer with no interaction history gets the trending list instead;
// the returned algorithm label tells the two apart.
func (e *Engine) Personalized(customerID int, limit int) ([]Entry, string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	interacted, err := e.interactionHistory(customerID)
	if err != nil {
		return nil, "", err
	}
	if len(interacted) == 0 {
		// explicit fallback, not an error path
		entries, algo, err := e.Trending(limit)
		return entries, algo, err
	}

	// one TF map per interacted book
	vectors := make([]map[string]float64, 0, len(interacted))
	interactedIDs := make([]int, 0, len(interacted))
	for _, b := range interacted {
		vectors = append(vectors, tfidf.TermFrequency(ContentTokens(b)))
		interactedIDs = append(interactedIDs, b.ID)
	}
	profile := meanVector(vectors)

	candidates, err := e.catalog.ListActive(book.Filter{ExcludeIDs: interactedIDs}, personalizedCandidateLimit)
	if err != nil {
		return nil, "", err
	}

	entries := make([]Entry, 0, len(candidates))
	for _, cand := range candidates {
		candTF := tfidf.TermFrequency(ContentTokens(cand))
		entries = append(entries, Entry{
			BookID: cand.ID,
			Score:  roundScore(tfidf.CosineSimilarity(profile, candTF)),
			Reason: reasonPersonalized,
		})
	}
	return sortAndTrim(entries, limit), AlgorithmProfile, nil
}

// interactionHistory collects wishlist books first, then books from the
// most recent delivered orders, deduplicated by book id in first-seen
// order.
func (e *Engine) interactionHistory(customerID int) ([]book.Book, error) {
	out := make([]book.Book, 0)
	seen := make(map[int]bool)

	wishlisted, err := e.wishlist.ListBooks(customerID)
	if err != nil {
		return nil, err
	}
	for _, b := range wishlisted {
		if !seen[b.ID] {
			seen[b.ID] = true
			out = append(out, b)
		}
	}

	ordered, err := e.orders.ListDeliveredBooks(customerID, recentOrderLimit)
	if err != nil {
		return nil, err
	}
	for _, b := range ordered {
		if !seen[b.ID] {
			seen[b.ID] = true
			out = append(out, b)
		}
	}
	return out, nil
}

// meanVector averages term weights across the interacted books' TF maps:
// every term appearing in any map contributes its (possibly zero) weight
// in each map, divided by the number of maps. Unweighted over items.
func meanVector(vectors []map[string]float64) map[string]float64 {
	profile := make(map[string]float64)
	if len(vectors) == 0 {
		return profile
	}
	for _, vec := range vectors {
		for term, w := range vec {
			profile[term] += w
		}
	}
	n := float64(len(vectors))
	for term := range profile {
		profile[term] /= n
	}
	return profile
}
