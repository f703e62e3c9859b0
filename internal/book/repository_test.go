package book

import "testing"

func seedCatalog() *InMemoryRepository {
	cat := &Ref{ID: 1, Name: "Fiction"}
	auth := &Ref{ID: 1, Name: "A Writer"}
	return NewInMemoryRepository([]Book{
		{ID: 1, Title: "One", Category: cat, Author: auth, IsActive: true, PurchaseCount: 10, AverageRating: 3},
		{ID: 2, Title: "Two", Category: cat, IsActive: true, PurchaseCount: 10, AverageRating: 5},
		{ID: 3, Title: "Three", Author: auth, IsActive: true, PurchaseCount: 30},
		{ID: 4, Title: "Four", Category: &Ref{ID: 2, Name: "Essays"}, IsActive: true},
		{ID: 5, Title: "Hidden", Category: cat, IsActive: false, PurchaseCount: 99},
	})
}

func TestListActiveSkipsInactive(t *testing.T) {
	repo := seedCatalog()
	books, err := repo.ListActive(Filter{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range books {
		if !b.IsActive {
			t.Fatalf("inactive book returned: %+v", b)
		}
	}
	if len(books) != 4 {
		t.Fatalf("expected 4 active books, got %d", len(books))
	}
}

func TestListActiveCategoryAuthorAreORCombined(t *testing.T) {
	repo := seedCatalog()
	books, err := repo.ListActive(Filter{CategoryID: 1, AuthorID: 1}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// books 1, 2 match the category, book 3 matches the author
	if len(books) != 3 {
		t.Fatalf("expected 3 matches, got %v", books)
	}
	for _, b := range books {
		if b.CategoryID() != 1 && b.AuthorID() != 1 {
			t.Fatalf("book matches neither constraint: %+v", b)
		}
	}
}

func TestListActiveExcludesIDs(t *testing.T) {
	repo := seedCatalog()
	books, err := repo.ListActive(Filter{ExcludeIDs: []int{1, 3}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range books {
		if b.ID == 1 || b.ID == 3 {
			t.Fatalf("excluded book returned: %+v", b)
		}
	}
}

func TestListActivePopularityOrder(t *testing.T) {
	repo := seedCatalog()
	books, err := repo.ListActive(Filter{OrderByPopularity: true}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// purchases desc, rating breaks the 10/10 tie
	want := []int{3, 2, 1, 4}
	for i, b := range books {
		if b.ID != want[i] {
			t.Fatalf("order = %v, want %v", ids(books), want)
		}
	}
}

func TestListActiveLimit(t *testing.T) {
	repo := seedCatalog()
	books, _ := repo.ListActive(Filter{}, 2)
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := seedCatalog()
	if _, err := repo.GetByID(999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRefHelpersNilSafe(t *testing.T) {
	b := Book{}
	if b.CategoryID() != 0 || b.AuthorID() != 0 {
		t.Fatal("nil refs must read as zero ids")
	}
}

func ids(books []Book) []int {
	out := make([]int, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}
