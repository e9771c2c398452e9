package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/blog-engagement-api/internal/config"
	"github.com/blog-engagement-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	serviceName     = "blog-engagement-api"
	requestIDHeader = "X-Request-ID"
)

// allowedMethods is the verb set served on every resource route
var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodHead}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.AllowedOrigin()))

	// Handlers
	likeHandler := NewLikeHandler(services, log)
	commentHandler := NewCommentHandler(services, cfg.Server.MaxBodyBytes, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services, log))

	// The frontend calls the /api paths; the bare paths serve direct clients.
	for _, prefix := range []string{"", "/api"} {
		group := router.Group(prefix)
		likeHandler.Register(group.Group("/likes"))
		commentHandler.Register(group.Group("/comments"))
	}

	router.GET("/v1/exports/comments/:id", exportHandler.ExportComments)

	router.NoMethod(methodNotAllowed)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

// healthCheck reports store reachability
func healthCheck(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		}

		if err := services.Health.Check(c.Request.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}

		body["status"] = "healthy"
		c.JSON(http.StatusOK, body)
	}
}

func methodNotAllowed(c *gin.Context) {
	c.Header("Allow", strings.Join(allowedMethods, ", "))
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"error":  "Method not allowed",
		"method": c.Request.Method,
	})
}

// noContent answers preflight and HEAD requests
func noContent(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware reuses the caller's X-Request-ID or assigns a new one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware allows a single origin
func corsMiddleware(origin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  []string{origin},
		AllowMethods:  allowedMethods,
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	})
}
