// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/http/handlers"
	"tripplanner/internal/http/middleware"
)

func NewRouter(deps ServerDeps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger), middleware.Logging(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	tripHandler := handlers.NewTripHandler(deps.Runner, deps.OperationTimeout)
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Runner.Planner())

	api := r.Group("/api")
	api.GET("/options", tripHandler.Options)

	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	}
	api.Use(middleware.RateLimit(deps.RateLimitPerMinute, deps.RateLimitBurst, deps.Logger))

	api.POST("/sessions", sessionHandler.Create)
	api.GET("/sessions/:id", sessionHandler.Get)
	api.DELETE("/sessions/:id", sessionHandler.End)
	api.PUT("/sessions/:id/credential", sessionHandler.SetCredential)
	api.GET("/sessions/:id/itinerary/download", sessionHandler.DownloadItinerary)

	api.POST("/sessions/:id/research", tripHandler.Research)
	api.POST("/sessions/:id/plan", tripHandler.Plan)
	api.POST("/sessions/:id/tips", tripHandler.Tips)

	return r
}
