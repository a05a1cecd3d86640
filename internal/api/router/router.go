// internal/api/router/router.go

// Package router wires the HTTP surface: operation routes, health check,
// and the metrics endpoint.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sponsornest/internal/common/logger"
	"sponsornest/internal/common/observability"
	"sponsornest/internal/handlers/createevent"
	"sponsornest/internal/handlers/matchsponsors"
	"sponsornest/internal/handlers/notifyinterest"
	"sponsornest/internal/handlers/notifysponsors"
)

// Handlers groups the operation handlers mounted under /api/v1.
type Handlers struct {
	MatchSponsors  *matchsponsors.Handler
	NotifySponsors *notifysponsors.Handler
	NotifyInterest *notifyinterest.Handler
	CreateEvent    *createevent.Handler
}

// New builds the gin engine with logging and metrics middleware.
func New(h Handlers, obs *observability.Observability, log logger.Logger, environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(recordOperations(obs))

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/match-sponsors", h.MatchSponsors.Handle)
		v1.POST("/notify-sponsors", h.NotifySponsors.Handle)
		v1.POST("/notify-interest", h.NotifyInterest.Handle)
		v1.POST("/events", h.CreateEvent.Handle)
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request handled", fields)
			return
		}
		log.Info("request handled", fields)
	}
}

func recordOperations(obs *observability.Observability) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		operation := c.FullPath()
		if operation == "" {
			operation = "unmatched"
		}
		status := fmt.Sprintf("%d", c.Writer.Status())
		obs.RecordOperation(c.Request.Context(), operation, status)
		obs.RecordDuration(c.Request.Context(), operation, time.Since(start))
	}
}
