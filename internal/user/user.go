package user

// User represents a bookstore customer account and maps to the `users`
// table. Wishlist holds book ids in the order they were added; the
// wishlist package owns its mutation.
type User struct {
	ID        int    `json:"userId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Wishlist  []int  `json:"wishlist,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
