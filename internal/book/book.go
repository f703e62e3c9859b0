package book

// Ref is a resolved category or author reference. Listing queries join the
// lookup tables so Name is populated; a Ref may still carry only the ID when
// the referenced row is gone, and consumers must tolerate that.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Book represents a catalog book and maps to the `books` table.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Book struct {
	ID            int     `json:"bookId"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Category      *Ref    `json:"category,omitempty"`
	Author        *Ref    `json:"author,omitempty"`
	Price         int     `json:"price"`
	Stock         int     `json:"stock"`
	AverageRating float64 `json:"averageRating"`
	ViewCount     int     `json:"viewCount"`
	PurchaseCount int     `json:"purchaseCount"`
	IsActive      bool    `json:"isActive"`
	CoverImg      *string `json:"coverImg,omitempty"`
	CreatedAt     *string `json:"createdAt,omitempty"`
	UpdatedAt     *string `json:"updatedAt,omitempty"`
}

// CategoryID returns the category reference id, or 0 when absent.
func (b Book) CategoryID() int {
	if b.Category == nil {
		return 0
	}
	return b.Category.ID
}

// AuthorID returns the author reference id, or 0 when absent.
func (b Book) AuthorID() int {
	if b.Author == nil {
		return 0
	}
	return b.Author.ID
}
