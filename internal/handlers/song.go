package handlers

import (
	"errors"
	"strconv"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SongHandler struct {
	service *services.SongService
}

func NewSongHandler(db *database.DB) *SongHandler {
	return &SongHandler{
		service: services.NewSongService(db),
	}
}

func SetupSongRoutes(router fiber.Router, db *database.DB) {
	h := NewSongHandler(db)

	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
}

// List godoc
// @Summary List catalog songs
// @Tags songs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param q query string false "Search in title or artist"
// @Param artist query string false "Filter by exact artist"
// @Success 200 {object} services.SongListResponse
// @Router /songs [get]
func (h *SongHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	filter := services.SongFilter{
		Page:   page,
		Limit:  limit,
		Query:  c.Query("q"),
		Artist: c.Query("artist"),
	}

	response, err := h.service.List(&filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response)
}

// Get godoc
// @Summary Get song by ID
// @Tags songs
// @Produce json
// @Param id path int true "Song ID"
// @Success 200 {object} models.Song
// @Router /songs/{id} [get]
func (h *SongHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid song ID"})
	}

	song, err := h.service.GetByID(uint(id))
	if errors.Is(err, services.ErrSongNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(song)
}

// Create godoc
// @Summary Add a song to the catalog
// @Tags songs
// @Accept json
// @Produce json
// @Param request body services.CreateSongRequest true "Song data"
// @Success 201 {object} models.Song
// @Router /songs [post]
func (h *SongHandler) Create(c *fiber.Ctx) error {
	var req services.CreateSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	song, err := h.service.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(song)
}

// Update godoc
// @Summary Update a catalog song
// @Tags songs
// @Accept json
// @Produce json
// @Param id path int true "Song ID"
// @Param request body services.CreateSongRequest true "Fields to update"
// @Success 200 {object} models.Song
// @Router /songs/{id} [put]
func (h *SongHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid song ID"})
	}

	var req services.CreateSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	song, err := h.service.Update(uint(id), &req)
	if errors.Is(err, services.ErrSongNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(song)
}

// Delete godoc
// @Summary Remove a song from the catalog
// @Tags songs
// @Param id path int true "Song ID"
// @Success 204
// @Router /songs/{id} [delete]
func (h *SongHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid song ID"})
	}

	err = h.service.Delete(uint(id))
	if errors.Is(err, services.ErrSongNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
