package wishlist

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/bookstore-backend/internal/user"
)

// CacheInvalidator clears a customer's cached recommendations; the
// personalized profile vector is derived from the wishlist, so every
// mutation here makes the cached list stale.
type CacheInvalidator interface {
	ClearCache(userID int) error
}

type Handler struct {
	service     *Service
	invalidator CacheInvalidator
}

func NewHandler(s *Service, invalidator CacheInvalidator) *Handler {
	return &Handler{service: s, invalidator: invalidator}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist/:bookId<[0-9]+>", h.addToWishlist)
	app.Delete("/api/v1/wishlist/:bookId<[0-9]+>", h.removeFromWishlist)
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	books, err := h.service.ListBooks(userID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(books)
}

func (h *Handler) addToWishlist(c *fiber.Ctx) error {
	return h.mutate(c, h.service.Add)
}

func (h *Handler) removeFromWishlist(c *fiber.Ctx) error {
	return h.mutate(c, h.service.Remove)
}

func (h *Handler) mutate(c *fiber.Ctx, op func(int, int) ([]int, error)) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	bookID, err := strconv.Atoi(c.Params("bookId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid book id"})
	}

	ids, err := op(userID, bookID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		case ErrAlreadyInWishlist, ErrNotInWishlist:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	if h.invalidator != nil {
		if err := h.invalidator.ClearCache(userID); err != nil {
			fmt.Printf("warning: could not clear recommendation cache for user %d: %v\n", userID, err)
		}
	}
	return c.JSON(fiber.Map{"wishlist": ids})
}
