package wishlist

import (
	"errors"
	"sync"

	"github.com/wichananm65/bookstore-backend/internal/book"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrAlreadyInWishlist = errors.New("book already in wishlist")
	ErrNotInWishlist     = errors.New("book not in wishlist")
)

// Repository provides access to a customer's wishlist.
type Repository interface {
	Add(userID int, bookID int, updatedAt string) ([]int, error)
	Remove(userID int, bookID int, updatedAt string) ([]int, error)
	// ListBooks resolves the wishlist to full book records, preserving the
	// order the books were added.
	ListBooks(userID int) ([]book.Book, error)
}

// InMemoryRepository is used for tests and local scenarios. Books are
// resolved against an injected catalog repository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	lists   map[int][]int
	catalog book.Repository
}

func NewInMemoryRepository(catalog book.Repository, seed map[int][]int) *InMemoryRepository {
	r := &InMemoryRepository{lists: make(map[int][]int, len(seed)), catalog: catalog}
	for userID, ids := range seed {
		r.lists[userID] = append([]int(nil), ids...)
	}
	return r
}

func (r *InMemoryRepository) Add(userID int, bookID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.lists[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, id := range ids {
		if id == bookID {
			return nil, ErrAlreadyInWishlist
		}
	}
	ids = append(ids, bookID)
	r.lists[userID] = ids
	return append([]int(nil), ids...), nil
}

func (r *InMemoryRepository) Remove(userID int, bookID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.lists[userID]
	if !ok {
		return nil, ErrNotFound
	}
	found := false
	next := make([]int, 0, len(ids))
	for _, id := range ids {
		if id == bookID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		return nil, ErrNotInWishlist
	}
	r.lists[userID] = next
	return append([]int(nil), next...), nil
}

func (r *InMemoryRepository) ListBooks(userID int) ([]book.Book, error) {
	r.mu.RLock()
	ids, ok := r.lists[userID]
	ids = append([]int(nil), ids...)
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]book.Book, 0, len(ids))
	for _, id := range ids {
		b, err := r.catalog.GetByID(id)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
