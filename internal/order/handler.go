package order

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/bookstore-backend/internal/user"
)

// CacheInvalidator clears a customer's cached recommendations when their
// interaction history changes (new orders shift the profile vector).
type CacheInvalidator interface {
	ClearCache(userID int) error
}

type Handler struct {
	service     *Service
	invalidator CacheInvalidator
}

// NewHandler wires the order service with an optional recommendation cache
// invalidator (nil disables invalidation, e.g. in tests).
func NewHandler(s *Service, invalidator CacheInvalidator) *Handler {
	return &Handler{service: s, invalidator: invalidator}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.getOrders)
}

type createOrderRequest struct {
	Cart          map[string]int `json:"cart"`
	Quantity      int            `json:"quantity"`
	TotalPrice    float64        `json:"totalPrice"`
	ShippingPrice float64        `json:"shippingPrice"`
	GrandPrice    float64        `json:"grandPrice"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.Cart) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart cannot be empty"})
	}
	if payload.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be positive"})
	}
	if payload.TotalPrice < 0 || payload.ShippingPrice < 0 || payload.GrandPrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "prices must be non-negative"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Order{
		Cart:          payload.Cart,
		Quantity:      payload.Quantity,
		TotalPrice:    payload.TotalPrice,
		ShippingPrice: payload.ShippingPrice,
		GrandPrice:    payload.GrandPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// the customer's purchase history changed, so their personalized
	// recommendations are stale
	if h.invalidator != nil {
		if err := h.invalidator.ClearCache(userID); err != nil {
			fmt.Printf("warning: could not clear recommendation cache for user %d: %v\n", userID, err)
		}
	}
	return c.Status(fiber.StatusOK).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}
