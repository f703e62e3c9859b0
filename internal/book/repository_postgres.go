package book

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	selectBookColumns = `
        SELECT b.book_id, b.title, b.description,
               b.category_id, c.category_name,
               b.author_id, a.author_name,
               b.price, b.stock, b.average_rating, b.view_count, b.purchase_count,
               b.is_active, b.cover_img, b.created_at, b.updated_at
        FROM books b
        LEFT JOIN categories c ON c.category_id = b.category_id
        LEFT JOIN authors a ON a.author_id = b.author_id
    `

	getBookByIDQuery = selectBookColumns + ` WHERE b.book_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive(f Filter, limit int) ([]Book, error) {
	query := selectBookColumns + ` WHERE b.is_active = TRUE`
	args := make([]interface{}, 0, 4)

	if len(f.ExcludeIDs) > 0 {
		args = append(args, pq.Array(f.ExcludeIDs))
		query += fmt.Sprintf(` AND NOT (b.book_id = ANY($%d::int[]))`, len(args))
	}

	// category/author are OR-combined: a candidate need only match one
	orParts := make([]string, 0, 2)
	if f.CategoryID != 0 {
		args = append(args, f.CategoryID)
		orParts = append(orParts, fmt.Sprintf(`b.category_id = $%d`, len(args)))
	}
	if f.AuthorID != 0 {
		args = append(args, f.AuthorID)
		orParts = append(orParts, fmt.Sprintf(`b.author_id = $%d`, len(args)))
	}
	if len(orParts) > 0 {
		query += ` AND (` + strings.Join(orParts, " OR ") + `)`
	}

	if f.OrderByPopularity {
		query += ` ORDER BY b.purchase_count DESC, b.average_rating DESC, b.book_id`
	} else {
		query += ` ORDER BY b.book_id`
	}

	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Book, error) {
	row := r.db.QueryRow(getBookByIDQuery, id)
	b, err := scanBookRow(row)
	if err == sql.ErrNoRows {
		return Book{}, ErrNotFound
	}
	return b, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(rows *sql.Rows) (Book, error) {
	return scanBookRow(rows)
}

func scanBookRow(row rowScanner) (Book, error) {
	var (
		b            Book
		desc         sql.NullString
		categoryID   sql.NullInt64
		categoryName sql.NullString
		authorID     sql.NullInt64
		authorName   sql.NullString
		rating       sql.NullFloat64
		coverImg     sql.NullString
		createdAt    sql.NullString
		updatedAt    sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Title, &desc,
		&categoryID, &categoryName,
		&authorID, &authorName,
		&b.Price, &b.Stock, &rating, &b.ViewCount, &b.PurchaseCount,
		&b.IsActive, &coverImg, &createdAt, &updatedAt); err != nil {
		return Book{}, err
	}

	if desc.Valid {
		b.Description = desc.String
	}
	if categoryID.Valid {
		ref := &Ref{ID: int(categoryID.Int64)}
		if categoryName.Valid {
			ref.Name = categoryName.String
		}
		b.Category = ref
	}
	if authorID.Valid {
		ref := &Ref{ID: int(authorID.Int64)}
		if authorName.Valid {
			ref.Name = authorName.String
		}
		b.Author = ref
	}
	if rating.Valid {
		b.AverageRating = rating.Float64
	}
	if coverImg.Valid {
		b.CoverImg = &coverImg.String
	}
	if createdAt.Valid {
		b.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.String
	}
	return b, nil
}
