package order

import (
	"sort"
	"strconv"
	"sync"

	"github.com/wichananm65/bookstore-backend/internal/book"
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ord Order) (Order, error)
	ListByUser(userID int) ([]Order, error)
	// ListDeliveredBooks returns the distinct books contained in the user's
	// most recent `recentLimit` delivered orders, most recent order first.
	// Within an order, cart iteration order is normalized to ascending book
	// id so the result is deterministic.
	ListDeliveredBooks(userID int, recentLimit int) ([]book.Book, error)
}

// InMemoryRepository is used for tests and local scenarios. It resolves
// delivered books against an injected catalog repository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
	nextID  int
	catalog book.Repository
}

func NewInMemoryRepository(catalog book.Repository, seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Order, 0, len(seed)),
		nextID:  1,
		catalog: catalog,
	}
	maxID := 0
	for _, o := range seed {
		r.storage = append(r.storage, o)
		if o.OrderID > maxID {
			maxID = o.OrderID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ord.OrderID == 0 {
		ord.OrderID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.storage {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListDeliveredBooks(userID int, recentLimit int) ([]book.Book, error) {
	r.mu.RLock()
	delivered := make([]Order, 0)
	for _, o := range r.storage {
		if o.UserID == userID && o.Status == StatusDelivered {
			delivered = append(delivered, o)
		}
	}
	r.mu.RUnlock()

	// most recent first (higher order id = newer)
	sort.Slice(delivered, func(i, j int) bool {
		return delivered[i].OrderID > delivered[j].OrderID
	})
	if recentLimit > 0 && len(delivered) > recentLimit {
		delivered = delivered[:recentLimit]
	}

	seen := make(map[int]bool)
	out := make([]book.Book, 0)
	for _, o := range delivered {
		for _, id := range sortedCartIDs(o.Cart) {
			if seen[id] {
				continue
			}
			seen[id] = true
			b, err := r.catalog.GetByID(id)
			if err != nil {
				continue
			}
			out = append(out, b)
		}
	}
	return out, nil
}

func sortedCartIDs(cart map[string]int) []int {
	ids := make([]int, 0, len(cart))
	for key := range cart {
		if id, err := strconv.Atoi(key); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
