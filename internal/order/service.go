package order

import (
	"errors"

	"github.com/wichananm65/bookstore-backend/internal/book"
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Create(ord Order, userID int) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if len(ord.Cart) == 0 {
		return Order{}, errors.New("empty cart")
	}
	ord.UserID = userID
	if ord.Status == "" {
		ord.Status = StatusPending
	}
	return s.repo.Create(ord)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user")
	}
	return s.repo.ListByUser(userID)
}

// ListDeliveredBooks exposes the interaction history consumed by the
// recommendation engine.
func (s *Service) ListDeliveredBooks(userID int, recentLimit int) ([]book.Book, error) {
	if userID <= 0 {
		return []book.Book{}, nil
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return s.repo.ListDeliveredBooks(userID, recentLimit)
}
