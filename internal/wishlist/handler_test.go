package wishlist

import (
	"net/http/httptest"
	"strconv"
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

func newTestApp(t *testing.T, seed map[int][]int) (*fiber.App, *recordingInvalidator) {
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

func TestAddToWishlistClearsRecommendationCache(t *testing.T) {
	app, invalidator := newTestApp(t, map[int][]int{7: {}})

	req := httptest.NewRequest("POST", "/api/v1/wishlist/2", nil)
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(invalidator.cleared) != 1 || invalidator.cleared[0] != 7 {
		t.Fatalf("mutation must invalidate the user's cache, got %v", invalidator.cleared)
	}
}

func TestFailedMutationDoesNotClearCache(t *testing.T) {
	app, invalidator := newTestApp(t, map[int][]int{7: {2}})

	req := httptest.NewRequest("POST", "/api/v1/wishlist/2", nil)
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409 for a duplicate", resp.StatusCode)
	}
	if len(invalidator.cleared) != 0 {
		t.Fatalf("failed mutation must not invalidate the cache, got %v", invalidator.cleared)
	}
}

func TestWishlistRequiresUser(t *testing.T) {
	app, _ := newTestApp(t, map[int][]int{7: {}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/wishlist", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRemoveFromWishlist(t *testing.T) {
	app, invalidator := newTestApp(t, map[int][]int{7: {2, 3}})

	req := httptest.NewRequest("DELETE", "/api/v1/wishlist/3", nil)
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(invalidator.cleared) != 1 {
		t.Fatalf("remove must invalidate the cache, got %v", invalidator.cleared)
	}
}
