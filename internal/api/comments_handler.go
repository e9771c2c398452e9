package api

import (
	"net/http"

	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services     *service.Services
	maxBodyBytes int64
	log          zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, maxBodyBytes int64, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services:     services,
		maxBodyBytes: maxBodyBytes,
		log:          log.With().Str("handler", "comments").Logger(),
	}
}

// Register mounts the comment routes on group
func (h *CommentHandler) Register(group *gin.RouterGroup) {
	group.GET("/*id", h.ListComments)
	group.POST("/*id", h.AddComment)
	group.OPTIONS("/*id", noContent)
	group.HEAD("/*id", noContent)
}

// ListComments handles GET /comments/:id
func (h *CommentHandler) ListComments(c *gin.Context) {
	list, err := h.services.Comment.ListComments(c.Request.Context(), articleID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AddComment handles POST /comments/:id
func (h *CommentHandler) AddComment(c *gin.Context) {
	input := readCommentInput(c, h.maxBodyBytes)

	comment, err := h.services.Comment.AddComment(c.Request.Context(), articleID(c), input)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, models.CommentResponse{Item: *comment})
}
