package handlers

import (
	"strconv"
	"time"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/kvstore"
	"github.com/Jean612/SoundScape/internal/middleware"
	"github.com/Jean612/SoundScape/internal/services"
	"github.com/Jean612/SoundScape/internal/telemetry"
	"github.com/Jean612/SoundScape/pkg/ai"
	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	search    *services.AISearchService
	analytics *services.AnalyticsService
}

func NewSearchHandler(cfg *config.Config, store kvstore.Store, provider ai.Completer, analytics *services.AnalyticsService) *SearchHandler {
	return &SearchHandler{
		search:    services.NewAISearchService(cfg, store, provider, analytics),
		analytics: analytics,
	}
}

func SetupSearchRoutes(router fiber.Router, db *database.DB, cfg *config.Config, store kvstore.Store, provider ai.Completer) {
	h := NewSearchHandler(cfg, store, provider, services.NewAnalyticsService(db))

	router.Post("/", h.Search)
	router.Get("/trending", h.Trending)
	router.Get("/history", h.History)
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// Search godoc
// @Summary AI song search
// @Tags search
// @Accept json
// @Produce json
// @Param request body searchRequest true "Query and optional limit"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /search [post]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, _ := c.Locals("userID").(uint)

	start := time.Now()
	result := h.search.SearchSongs(c.UserContext(), services.SearchParams{
		Query:     req.Query,
		UserID:    userID,
		Limit:     req.Limit,
		IPAddress: c.IP(),
	})
	if telemetry.AISearchDuration != nil {
		telemetry.AISearchDuration.Record(c.UserContext(), time.Since(start).Seconds())
	}
	middleware.RecordAISearch(searchOutcome(result))

	if result.Success {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"songs":         result.Songs,
				"query":         result.Query,
				"cached":        result.Cached,
				"results_count": len(result.Songs),
				"timestamp":     result.Timestamp,
			},
		})
	}

	status := fiber.StatusUnprocessableEntity
	if result.RateLimited {
		status = fiber.StatusTooManyRequests
	}
	return c.Status(status).JSON(fiber.Map{
		"success":      false,
		"error":        result.Error,
		"rate_limited": result.RateLimited,
	})
}

func searchOutcome(result services.SearchResult) string {
	switch {
	case result.RateLimited:
		return "rate_limited"
	case result.Fallback:
		return "fallback"
	case !result.Success:
		return "validation_error"
	case result.Cached:
		return "cached"
	default:
		return "success"
	}
}

// Trending godoc
// @Summary Trending search queries
// @Tags search
// @Produce json
// @Param limit query int false "Maximum entries (default 10)"
// @Param time_period query int false "Window in hours (default 24)"
// @Success 200 {object} map[string]interface{}
// @Router /search/trending [get]
func (h *SearchHandler) Trending(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	timePeriod, _ := strconv.Atoi(c.Query("time_period", "24"))

	trending, err := h.analytics.Trending(c.UserContext(), limit, timePeriod)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "Unable to fetch trending searches",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"trending_searches": trending,
			"time_period_hours": timePeriod,
		},
	})
}

// History godoc
// @Summary The caller's search history
// @Tags search
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 20, max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /search/history [get]
func (h *SearchHandler) History(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))

	history, err := h.analytics.History(c.UserContext(), userID, page, perPage)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Unable to fetch search history",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"searches": history.Searches,
			"pagination": fiber.Map{
				"page":        history.Page,
				"per_page":    history.PerPage,
				"total_count": history.TotalCount,
			},
		},
	})
}
