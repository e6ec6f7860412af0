package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/drawparty-server/internal/config"
	"github.com/vovakirdan/drawparty-server/internal/core"
)

// NewServer builds the HTTP server: health, REST room lookups, and the
// WebSocket game endpoint.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	roomHandlers := NewRoomHandlers(hub, logger)
	api := router.Group("/api")
	api.GET("/rooms/:code", roomHandlers.GetRoom)
	api.GET("/stats", roomHandlers.GetStats)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
