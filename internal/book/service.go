package book

// Service provides business logic for catalog reads.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns up to `limit` active books (default 50).
func (s *Service) List(limit int) ([]Book, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListActive(Filter{}, limit)
}

func (s *Service) GetByID(id int) (Book, error) {
	if id <= 0 {
		return Book{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}
