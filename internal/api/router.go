// Package api exposes the navigator over HTTP with gin.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udisondev/wayfinder/internal/navigator"
)

// Handler serves the wayfinding endpoints.
type Handler struct {
	nav *navigator.Navigator
}

// NewHandler wraps nav.
func NewHandler(nav *navigator.Navigator) *Handler {
	return &Handler{nav: nav}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(nav *navigator.Navigator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors())

	h := NewHandler(nav)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/floors", h.Floors)
		api.GET("/pois", h.SearchPOIs)
		api.GET("/pois/:id", h.GetPOI)
		api.POST("/route", h.Route)
		api.POST("/route/geojson", h.RouteGeoJSON)
	}
	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
