package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/drawparty-server/internal/core"
)

// RoomHandlers provides HTTP handlers for room lookup endpoints, used by
// join screens to validate a code before opening the WebSocket.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{hub: hub, log: logger}
}

// RoomInfoResponse represents a room in API responses.
type RoomInfoResponse struct {
	Code        string `json:"code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Started     bool   `json:"started"`
	State       string `json:"state"`
}

// StatsResponse represents server occupancy.
type StatsResponse struct {
	Rooms   int `json:"rooms"`
	Clients int `json:"clients"`
	Waiting int `json:"waiting"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetRoom handles room lookup.
// GET /api/rooms/:code
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	code := c.Param("code")
	info, ok := h.hub.LookupRoom(c.Request.Context(), code)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	c.JSON(http.StatusOK, RoomInfoResponse{
		Code:        info.Code,
		PlayerCount: info.PlayerCount,
		MaxPlayers:  info.MaxPlayers,
		Started:     info.Started,
		State:       info.State,
	})
}

// GetStats handles server occupancy lookup.
// GET /api/stats
func (h *RoomHandlers) GetStats(c *gin.Context) {
	stats, ok := h.hub.CurrentStats(c.Request.Context())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "server shutting down"})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		Rooms:   stats.Rooms,
		Clients: stats.Clients,
		Waiting: stats.Waiting,
	})
}
