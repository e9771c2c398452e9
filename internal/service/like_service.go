package service

import (
	"context"

	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/rs/zerolog"
)

type likeService struct {
	store repository.Store
	log   zerolog.Logger
}

// NewLikeService creates a LikeService over store
func NewLikeService(store repository.Store, log zerolog.Logger) LikeService {
	return &likeService{
		store: store,
		log:   log.With().Str("service", "likes").Logger(),
	}
}

// GetCount returns the article's like count, 0 if it was never liked
func (s *likeService) GetCount(ctx context.Context, articleID string) (*models.LikeCount, error) {
	if err := checkArticleID(articleID); err != nil {
		return nil, err
	}

	count, err := s.store.Get(ctx, repository.LikeCountKey(articleID))
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}
	return &models.LikeCount{Count: count}, nil
}

// RegisterLike records a like from fingerprint. The counter only moves when
// the set-add reports a new member, so repeated likes are no-ops.
func (s *likeService) RegisterLike(ctx context.Context, articleID, fingerprint string) (*models.LikeResult, error) {
	if err := checkArticleID(articleID); err != nil {
		return nil, err
	}

	added, err := s.store.SAdd(ctx, repository.LikeSetKey(articleID), fingerprint)
	if err != nil {
		return nil, &StorageError{Op: "sadd", Err: err}
	}

	countKey := repository.LikeCountKey(articleID)
	count, err := s.store.Get(ctx, countKey)
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}

	if added {
		count, err = s.store.Incr(ctx, countKey)
		if err != nil {
			return nil, &StorageError{Op: "incr", Err: err}
		}
		s.log.Debug().Str("article_id", articleID).Int64("count", count).Msg("Like registered")
	}

	return &models.LikeResult{Count: count, Liked: added}, nil
}
