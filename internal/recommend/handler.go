package recommend

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/bookstore-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/recommendations/trending", h.getTrending)
	app.Get("/api/v1/book/:id<[0-9]+>/similar", h.getSimilar)
	app.Post("/api/v1/recommendations/track", h.track)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/recommendations", h.getPersonalized)
	app.Delete("/api/v1/recommendations/cache", h.clearCache)
}

// RegisterMaintenanceRoutes exposes the purge hook for an external
// scheduler, gated the same way as the other dev endpoints.
func (h *Handler) RegisterMaintenanceRoutes(app *fiber.App) {
	app.Post("/dev/purge-recommendation-cache", h.purgeExpired)
}

func (h *Handler) getTrending(c *fiber.Ctx) error {
	return c.JSON(h.service.GetTrending(limitQuery(c)))
}

func (h *Handler) getSimilar(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	return c.JSON(h.service.GetSimilar(id, limitQuery(c)))
}

func (h *Handler) getPersonalized(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(h.service.GetPersonalized(userID, limitQuery(c)))
}

func (h *Handler) clearCache(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.service.ClearCache(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "recommendation cache cleared"})
}

type trackRequest struct {
	Type         string `json:"type"`
	SubjectKey   string `json:"subjectKey"`
	SourceBookID int    `json:"sourceBookId"`
	Event        string `json:"event"`
}

func (h *Handler) track(c *fiber.Ctx) error {
	payload := new(trackRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Track(payload.SubjectKey, Type(payload.Type), payload.SourceBookID, TrackEvent(payload.Event)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "tracked"})
}

func (h *Handler) purgeExpired(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_PURGE_CACHE") != "1" {
		return c.Status(fiber.StatusForbidden).SendString("not allowed")
	}
	purged, err := h.service.PurgeExpired()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"purged": purged})
}

func limitQuery(c *fiber.Ctx) int {
	limit := DefaultLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return limit
}
