package api

import (
	"net/http"
	"strings"

	"github.com/blog-engagement-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LikeHandler handles like endpoints
type LikeHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(services *service.Services, log zerolog.Logger) *LikeHandler {
	return &LikeHandler{
		services: services,
		log:      log.With().Str("handler", "likes").Logger(),
	}
}

// Register mounts the like routes on group
func (h *LikeHandler) Register(group *gin.RouterGroup) {
	group.GET("/*id", h.GetLikes)
	group.POST("/*id", h.RegisterLike)
	group.OPTIONS("/*id", noContent)
	group.HEAD("/*id", noContent)
}

// GetLikes handles GET /likes/:id
func (h *LikeHandler) GetLikes(c *gin.Context) {
	result, err := h.services.Like.GetCount(c.Request.Context(), articleID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RegisterLike handles POST /likes/:id
func (h *LikeHandler) RegisterLike(c *gin.Context) {
	fingerprint := service.Fingerprint(c.GetHeader("X-Forwarded-For"), c.GetHeader("User-Agent"))

	result, err := h.services.Like.RegisterLike(c.Request.Context(), articleID(c), fingerprint)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// articleID returns the remainder of the path after the resource prefix.
// Routes use a catch-all so malformed ids reach validation instead of 404.
func articleID(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("id"), "/")
}
