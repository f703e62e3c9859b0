package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/wichananm65/bookstore-backend/internal/book"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addToWishlistQuery = `
		UPDATE users
		SET wishlist = array_append(coalesce(wishlist, ARRAY[]::integer[]), $2),
			"updatedAt" = $3
		WHERE "userId" = $1
			AND NOT ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	removeFromWishlistQuery = `
		UPDATE users
		SET wishlist = array_remove(coalesce(wishlist, ARRAY[]::integer[]), $2),
			"updatedAt" = $3
		WHERE "userId" = $1
			AND ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	getWishlistQuery = `SELECT wishlist FROM users WHERE "userId" = $1`

	wishlistBooksQuery = `
		SELECT b.book_id, b.title, b.description,
		       b.category_id, c.category_name,
		       b.author_id, a.author_name,
		       b.average_rating, b.view_count, b.purchase_count, b.is_active
		FROM books b
		LEFT JOIN categories c ON c.category_id = b.category_id
		LEFT JOIN authors a ON a.author_id = b.author_id
		WHERE b.book_id = ANY($1::int[])
		ORDER BY array_position($1::int[], b.book_id)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID int, bookID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(addToWishlistQuery, userID, bookID, updatedAt).Scan(&arr)
	if err == sql.ErrNoRows {
		// either the user is missing or the book is already present
		var exists int
		if err2 := r.db.QueryRow(`SELECT 1 FROM users WHERE "userId" = $1`, userID).Scan(&exists); err2 == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyInWishlist
	}
	if err != nil {
		return nil, err
	}
	return int64sToInts(arr), nil
}

func (r *PostgresRepository) Remove(userID int, bookID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(removeFromWishlistQuery, userID, bookID, updatedAt).Scan(&arr)
	if err == sql.ErrNoRows {
		var exists int
		if err2 := r.db.QueryRow(`SELECT 1 FROM users WHERE "userId" = $1`, userID).Scan(&exists); err2 == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, ErrNotInWishlist
	}
	if err != nil {
		return nil, err
	}
	return int64sToInts(arr), nil
}

func (r *PostgresRepository) ListBooks(userID int) ([]book.Book, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(getWishlistQuery, userID).Scan(&arr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ids := int64sToInts(arr)
	if len(ids) == 0 {
		return []book.Book{}, nil
	}

	rows, err := r.db.Query(wishlistBooksQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]book.Book, 0, len(ids))
	for rows.Next() {
		var (
			b            book.Book
			desc         sql.NullString
			categoryID   sql.NullInt64
			categoryName sql.NullString
			authorID     sql.NullInt64
			authorName   sql.NullString
			rating       sql.NullFloat64
		)
		if err := rows.Scan(&b.ID, &b.Title, &desc,
			&categoryID, &categoryName,
			&authorID, &authorName,
			&rating, &b.ViewCount, &b.PurchaseCount, &b.IsActive); err != nil {
			continue
		}
		if desc.Valid {
			b.Description = desc.String
		}
		if categoryID.Valid {
			ref := &book.Ref{ID: int(categoryID.Int64)}
			if categoryName.Valid {
				ref.Name = categoryName.String
			}
			b.Category = ref
		}
		if authorID.Valid {
			ref := &book.Ref{ID: int(authorID.Int64)}
			if authorName.Valid {
				ref.Name = authorName.String
			}
			b.Author = ref
		}
		if rating.Valid {
			b.AverageRating = rating.Float64
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func int64sToInts(arr pq.Int64Array) []int {
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v))
	}
	return out
}
