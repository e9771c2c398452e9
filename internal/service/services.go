package service

import (
	"context"
	"io"

	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/rs/zerolog"
)

// LikeService defines the interface for like operations
type LikeService interface {
	GetCount(ctx context.Context, articleID string) (*models.LikeCount, error)
	RegisterLike(ctx context.Context, articleID, fingerprint string) (*models.LikeResult, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListComments(ctx context.Context, articleID string) (*models.CommentList, error)
	AddComment(ctx context.Context, articleID string, input models.CommentInput) (*models.Comment, error)
}

// ExportService writes an article's comments in a file format
type ExportService interface {
	ExportComments(ctx context.Context, w io.Writer, articleID, format string) (int, error)
}

// HealthService reports whether the backing store is reachable
type HealthService interface {
	Check(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Like    LikeService
	Comment CommentService
	Export  ExportService
	Health  HealthService
}

// NewServices creates all services
func NewServices(store repository.Store, log zerolog.Logger) *Services {
	commentSvc := NewCommentService(store, log, nil)

	return &Services{
		Like:    NewLikeService(store, log),
		Comment: commentSvc,
		Export:  newExportService(commentSvc, log),
		Health:  &healthService{store: store},
	}
}

type healthService struct {
	store repository.Store
}

func (s *healthService) Check(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}
