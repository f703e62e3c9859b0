package order

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type recordingInvalidator struct {
	cleared []int
}

func (r *recordingInvalidator) ClearCache(userID int) error {
	r.cleared = append(r.cleared, userID)
	return nil
}

func newTestApp(t *testing.T, seed []Order) (*fiber.App, *recordingInvalidator) {
	t.Helper()
	invalidator := &recordingInvalidator{}
	handler := NewHandler(NewService(NewInMemoryRepository(testCatalog(), seed)), invalidator)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(id)}})
			}
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)
	return app, invalidator
}

func TestCreateOrderClearsRecommendationCache(t *testing.T) {
	app, invalidator := newTestApp(t, nil)

	body := `{"cart":{"1":2},"quantity":2,"totalPrice":500,"shippingPrice":50,"grandPrice":550}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var created Order
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.UserID != 7 || created.Status != StatusPending {
		t.Fatalf("unexpected order: %+v", created)
	}
	if len(invalidator.cleared) != 1 || invalidator.cleared[0] != 7 {
		t.Fatalf("new order must invalidate the cache, got %v", invalidator.cleared)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	app, invalidator := newTestApp(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"empty cart", `{"cart":{},"quantity":1}`},
		{"zero quantity", `{"cart":{"1":1},"quantity":0}`},
		{"negative price", `{"cart":{"1":1},"quantity":1,"totalPrice":-5}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "7")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", tc.name, err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, resp.StatusCode)
		}
	}
	if len(invalidator.cleared) != 0 {
		t.Fatalf("rejected orders must not invalidate the cache, got %v", invalidator.cleared)
	}
}

func TestCreateOrderRequiresUser(t *testing.T) {
	app, _ := newTestApp(t, nil)

	body := `{"cart":{"1":1},"quantity":1}`
	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestGetOrdersReturnsOwnOrdersOnly(t *testing.T) {
	app, _ := newTestApp(t, []Order{
		{OrderID: 1, UserID: 7, Cart: map[string]int{"1": 1}},
		{OrderID: 2, UserID: 8, Cart: map[string]int{"2": 1}},
	})

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var orders []Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderID != 1 {
		t.Fatalf("unexpected orders: %v", orders)
	}
}
