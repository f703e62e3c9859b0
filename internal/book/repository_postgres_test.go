package book

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookColumns = []string{
	"book_id", "title", "description",
	"category_id", "category_name",
	"author_id", "author_name",
	"price", "stock", "average_rating", "view_count", "purchase_count",
	"is_active", "cover_img", "created_at", "updated_at",
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(bookColumns).
		AddRow(3, "Dune", "Spice politics", 1, "Science Fiction", 2, "Frank Herbert",
			450, 12, 4.7, 1200, 80, true, nil, nil, nil)
	mock.ExpectQuery("SELECT b.book_id, b.title").
		WithArgs(3).
		WillReturnRows(rows)

	b, err := repo.GetByID(3)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if b.ID != 3 || b.Title != "Dune" {
		t.Fatalf("unexpected book: %+v", b)
	}
	if b.Category == nil || b.Category.Name != "Science Fiction" {
		t.Fatalf("category not joined: %+v", b.Category)
	}
	if b.Author == nil || b.Author.ID != 2 {
		t.Fatalf("author not joined: %+v", b.Author)
	}
	if b.CoverImg != nil {
		t.Fatalf("null cover must stay nil, got %v", *b.CoverImg)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT b.book_id, b.title").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(bookColumns))

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresListActiveBuildsORFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(bookColumns).
		AddRow(2, "Two", nil, 1, "Fiction", nil, nil, 100, 5, nil, 0, 0, true, nil, nil, nil)
	mock.ExpectQuery(`category_id = \$2 OR b.author_id = \$3`).
		WithArgs(sqlmock.AnyArg(), 1, 9, 50).
		WillReturnRows(rows)

	books, err := repo.ListActive(Filter{ExcludeIDs: []int{7}, CategoryID: 1, AuthorID: 9}, 50)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 1 || books[0].ID != 2 {
		t.Fatalf("unexpected books: %v", books)
	}
	if books[0].Author != nil {
		t.Fatalf("null author must stay nil: %+v", books[0].Author)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresListActivePopularityOrdering(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`ORDER BY b.purchase_count DESC, b.average_rating DESC`).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(bookColumns))

	if _, err := repo.ListActive(Filter{OrderByPopularity: true}, 100); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
