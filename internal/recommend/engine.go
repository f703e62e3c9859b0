package recommend

import (
	"math"
	"sort"

	"github.com/wichananm65/bookstore-backend/internal/book"
)

// Collaborator interfaces consumed by the engine. They are injected via
// NewEngine so the engine has no dependency on any storage technology;
// the concrete adapters live in internal/book, internal/order and
// internal/wishlist.

// Catalog provides read access to active books.
type Catalog interface {
	ListActive(f book.Filter, limit int) ([]book.Book, error)
	GetByID(id int) (book.Book, error)
}

// OrderHistory provides the books from a customer's recent delivered
// orders, deduplicated.
type OrderHistory interface {
	ListDeliveredBooks(userID int, recentLimit int) ([]book.Book, error)
}

// Wishlist provides a customer's wishlist books.
type Wishlist interface {
	ListBooks(userID int) ([]book.Book, error)
}

// Engine computes recommendation lists. All strategies are synchronous,
// CPU-bound passes over bounded candidate sets; the only I/O is the
// initial batched collaborator reads.
type Engine struct {
	catalog  Catalog
	orders   OrderHistory
	wishlist Wishlist
}

func NewEngine(catalog Catalog, orders OrderHistory, wishlist Wishlist) *Engine {
	return &Engine{catalog: catalog, orders: orders, wishlist: wishlist}
}

// roundScore fixes scores to 4 decimal places for stable comparison and
// serialization.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}

// sortAndTrim orders entries by descending score and keeps the first
// `limit`. The sort is stable so ties keep the deterministic candidate
// retrieval order.
func sortAndTrim(entries []Entry, limit int) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
