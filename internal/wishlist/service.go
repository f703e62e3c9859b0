package wishlist

import (
	"time"

	"github.com/wichananm65/bookstore-backend/internal/book"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(userID int, bookID int) ([]int, error) {
	if userID <= 0 || bookID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Add(userID, bookID, now())
}

func (s *Service) Remove(userID int, bookID int) ([]int, error) {
	if userID <= 0 || bookID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Remove(userID, bookID, now())
}

func (s *Service) ListBooks(userID int) ([]book.Book, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListBooks(userID)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
