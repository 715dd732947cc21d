package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/channel-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/channel-notifier/internal/middlewares"
)

// New builds the HTTP engine. metrics serves the Prometheus scrape endpoint.
func New(handler *notification.Handler, metrics http.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	e.GET("/metrics", func(c *ginext.Context) {
		metrics.ServeHTTP(c.Writer, c.Request)
	})

	api := e.Group("/api/notify")
	{
		api.POST("", handler.Create)
		api.GET("", handler.GetAll)
		api.GET("/:id", handler.GetStatus)
		api.GET("/:id/attempts", handler.GetAttempts)
	}

	return e
}
