package order

// Order represents a purchase made by a customer. Cart maps bookID (as a
// string, matching jsonb object keys) to quantity.
type Order struct {
	OrderID       int            `json:"orderID"`
	UserID        int            `json:"userID,omitempty"`
	Cart          map[string]int `json:"cart"`
	Quantity      int            `json:"quantity"`
	TotalPrice    float64        `json:"totalPrice"`
	ShippingPrice float64        `json:"shippingPrice"`
	GrandPrice    float64        `json:"grandPrice"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

// Order lifecycle statuses. Only delivered orders feed the personalized
// recommendation profile.
const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)
