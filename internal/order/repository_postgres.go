package order

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/lib/pq"
	"github.com/wichananm65/bookstore-backend/internal/book"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	createOrderQuery = `
        INSERT INTO orders ("userID", cart, quantity, "totalPrice", "shippingPrice", "grandPrice", status, "createdAt", "updatedAt")
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING "orderID"
    `

	listOrdersByUserQuery = `
        SELECT "orderID", cart, quantity, "totalPrice", "shippingPrice", "grandPrice", status, "createdAt", "updatedAt"
        FROM orders
        WHERE "userID" = $1
        ORDER BY "orderID" DESC
    `

	deliveredCartsQuery = `
        SELECT cart FROM orders
        WHERE "userID" = $1 AND status = 'delivered'
        ORDER BY "orderID" DESC
        LIMIT $2
    `

	booksByIDsQuery = `
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

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	cartJSON, err := json.Marshal(ord.Cart)
	if err != nil {
		return Order{}, err
	}
	err = r.db.QueryRow(createOrderQuery,
		ord.UserID, string(cartJSON), ord.Quantity,
		ord.TotalPrice, ord.ShippingPrice, ord.GrandPrice,
		ord.Status, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&ord.OrderID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var (
			o       Order
			rawCart sql.NullString
			status  sql.NullString
			created sql.NullString
			updated sql.NullString
		)
		if err := rows.Scan(&o.OrderID, &rawCart, &o.Quantity,
			&o.TotalPrice, &o.ShippingPrice, &o.GrandPrice,
			&status, &created, &updated); err != nil {
			continue
		}
		o.UserID = userID
		o.Cart = parseCart(rawCart)
		if status.Valid {
			o.Status = status.String
		}
		if created.Valid {
			o.CreatedAt = created.String
		}
		if updated.Valid {
			o.UpdatedAt = updated.String
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListDeliveredBooks(userID int, recentLimit int) ([]book.Book, error) {
	rows, err := r.db.Query(deliveredCartsQuery, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	ids := make([]int, 0)
	for rows.Next() {
		var rawCart sql.NullString
		if err := rows.Scan(&rawCart); err != nil {
			continue
		}
		for _, id := range sortedCartIDs(parseCart(rawCart)) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []book.Book{}, nil
	}

	bookRows, err := r.db.Query(booksByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer bookRows.Close()

	out := make([]book.Book, 0, len(ids))
	for bookRows.Next() {
		var (
			b            book.Book
			desc         sql.NullString
			categoryID   sql.NullInt64
			categoryName sql.NullString
			authorID     sql.NullInt64
			authorName   sql.NullString
			rating       sql.NullFloat64
		)
		if err := bookRows.Scan(&b.ID, &b.Title, &desc,
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
	return out, bookRows.Err()
}

// parseCart accepts both the jsonb map shape and the legacy array shape
// (duplicate entries collapse to quantities).
func parseCart(raw sql.NullString) map[string]int {
	m := make(map[string]int)
	if !raw.Valid || raw.String == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw.String), &m); err == nil {
		return m
	}
	var arr []int
	if err := json.Unmarshal([]byte(raw.String), &arr); err == nil {
		for _, id := range arr {
			m[strconv.Itoa(id)]++
		}
	}
	return m
}
