package book

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("book not found")
)

// Filter narrows ListActive results. CategoryID and AuthorID are OR-combined
// (a book need only match one); zero values mean "no constraint".
type Filter struct {
	ExcludeIDs []int
	CategoryID int
	AuthorID   int
	// OrderByPopularity orders by purchaseCount desc, rating desc instead of
	// the default insertion/id order.
	OrderByPopularity bool
}

// Repository provides read access to the catalog.
type Repository interface {
	// ListActive returns up to `limit` active books matching the filter, in a
	// deterministic order.
	ListActive(f Filter, limit int) ([]Book, error)
	GetByID(id int) (Book, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data. Listing order is insertion order, which keeps
// results deterministic.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Book
}

func NewInMemoryRepository(seed []Book) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Book, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) ListActive(f Filter, limit int) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := make(map[int]bool, len(f.ExcludeIDs))
	for _, id := range f.ExcludeIDs {
		excluded[id] = true
	}

	out := make([]Book, 0)
	for _, b := range r.storage {
		if !b.IsActive || excluded[b.ID] {
			continue
		}
		if f.CategoryID != 0 || f.AuthorID != 0 {
			if !(f.CategoryID != 0 && b.CategoryID() == f.CategoryID) &&
				!(f.AuthorID != 0 && b.AuthorID() == f.AuthorID) {
				continue
			}
		}
		out = append(out, b)
	}

	if f.OrderByPopularity {
		// stable insertion sort keeps equal-score books in insertion order
		for i := 1; i < len(out); i++ {
			for j := i; j > 0 && morePopular(out[j], out[j-1]); j-- {
				out[j], out[j-1] = out[j-1], out[j]
			}
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func morePopular(a, b Book) bool {
	if a.PurchaseCount != b.PurchaseCount {
		return a.PurchaseCount > b.PurchaseCount
	}
	return a.AverageRating > b.AverageRating
}

func (r *InMemoryRepository) GetByID(id int) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.storage {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}
