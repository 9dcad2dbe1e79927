package handlers

import (
	"errors"
	"strconv"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PlaylistHandler struct {
	service *services.PlaylistService
}

func NewPlaylistHandler(db *database.DB) *PlaylistHandler {
	return &PlaylistHandler{
		service: services.NewPlaylistService(db),
	}
}

func SetupPlaylistRoutes(router fiber.Router, db *database.DB) {
	h := NewPlaylistHandler(db)

	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)

	router.Post("/:id/songs", h.AddSong)
	router.Delete("/:id/songs/:playlist_song_id", h.RemoveSong)
	router.Post("/:id/add_ai_song", h.AddSongFromAI)
}

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// List godoc
// @Summary List the caller's playlists
// @Tags playlists
// @Produce json
// @Success 200 {array} models.Playlist
// @Router /playlists [get]
func (h *PlaylistHandler) List(c *fiber.Ctx) error {
	playlists, err := h.service.List(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(playlists)
}

// Get godoc
// @Summary Get one playlist with its songs
// @Tags playlists
// @Produce json
// @Param id path int true "Playlist ID"
// @Success 200 {object} models.Playlist
// @Router /playlists/{id} [get]
func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist ID"})
	}

	playlist, err := h.service.Get(uint(id), currentUserID(c))
	if errors.Is(err, services.ErrPlaylistNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Playlist not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(playlist)
}

// Create godoc
// @Summary Create a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param request body services.CreatePlaylistRequest true "Playlist data"
// @Success 201 {object} models.Playlist
// @Router /playlists [post]
func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	var req services.CreatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	playlist, err := h.service.Create(currentUserID(c), &req)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(playlist)
}

// Update godoc
// @Summary Update a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "Playlist ID"
// @Param request body services.UpdatePlaylistRequest true "Fields to update"
// @Success 200 {object} models.Playlist
// @Router /playlists/{id} [put]
func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist ID"})
	}

	var req services.UpdatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	playlist, err := h.service.Update(uint(id), currentUserID(c), &req)
	if errors.Is(err, services.ErrPlaylistNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Playlist not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(playlist)
}

// Delete godoc
// @Summary Delete a playlist
// @Tags playlists
// @Param id path int true "Playlist ID"
// @Success 204
// @Router /playlists/{id} [delete]
func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist ID"})
	}

	err = h.service.Delete(uint(id), currentUserID(c))
	if errors.Is(err, services.ErrPlaylistNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Playlist not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type addSongRequest struct {
	SongID uint `json:"song_id"`
}

// AddSong godoc
// @Summary Add a catalog song to a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "Playlist ID"
// @Param request body addSongRequest true "Song ID"
// @Success 201 {object} map[string]interface{}
// @Router /playlists/{id}/songs [post]
func (h *PlaylistHandler) AddSong(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist ID"})
	}

	var req addSongRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	entry, action, err := h.service.AddSong(uint(id), currentUserID(c), req.SongID)
	return h.renderAddSongResult(c, entry, action, err)
}

// RemoveSong godoc
// @Summary Remove a song from a playlist
// @Tags playlists
// @Param id path int true "Playlist ID"
// @Param playlist_song_id path int true "Playlist song ID"
// @Success 204
// @Router /playlists/{id}/songs/{playlist_song_id} [delete]
func (h *PlaylistHandler) RemoveSong(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist ID"})
	}
	playlistSongID, err := strconv.Atoi(c.Params("playlist_song_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist song ID"})
	}

	err = h.service.RemoveSong(uint(id), currentUserID(c), uint(playlistSongID))
	if errors.Is(err, services.ErrPlaylistNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Playlist not found"})
	}
	if errors.Is(err, services.ErrSongNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Song not found in playlist"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddSongFromAI godoc
// @Summary Add an AI-suggested song to a playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path int true "Playlist ID"
// @Param request body services.SongSuggestion true "Suggested song"
// @Success 201 {object} map[string]interface{}
// @Router /playlists/{id}/add_ai_song [post]
func (h *PlaylistHandler) AddSongFromAI(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid playlist ID"})
	}

	var suggestion services.SongSuggestion
	if err := c.BodyParser(&suggestion); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	entry, action, err := h.service.AddSongFromAI(uint(id), currentUserID(c), &suggestion)
	return h.renderAddSongResult(c, entry, action, err)
}

func (h *PlaylistHandler) renderAddSongResult(c *fiber.Ctx, entry interface{}, action string, err error) error {
	if errors.Is(err, services.ErrPlaylistNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Playlist not found",
		})
	}
	if errors.Is(err, services.ErrSongNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Song not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	status := fiber.StatusCreated
	message := "Song added to playlist successfully"
	if action == services.SongActionExisting {
		status = fiber.StatusOK
		message = "Song already in playlist"
	}

	return c.Status(status).JSON(fiber.Map{
		"success":       true,
		"message":       message,
		"playlist_song": entry,
		"action":        action,
	})
}
