package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/blog-engagement-api/internal/validation"
	"github.com/rs/zerolog"
)

type commentService struct {
	store repository.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewCommentService creates a CommentService over store. now defaults to
// time.Now when nil.
func NewCommentService(store repository.Store, log zerolog.Logger, now func() time.Time) CommentService {
	if now == nil {
		now = time.Now
	}
	return &commentService{
		store: store,
		log:   log.With().Str("service", "comments").Logger(),
		now:   now,
	}
}

// ListComments returns the article's comments newest first, skipping any
// entry that does not decode to a complete comment
func (s *commentService) ListComments(ctx context.Context, articleID string) (*models.CommentList, error) {
	if err := checkArticleID(articleID); err != nil {
		return nil, err
	}

	raw, err := s.store.LRange(ctx, repository.CommentListKey(articleID), 0, -1)
	if err != nil {
		return nil, &StorageError{Op: "lrange", Err: err}
	}

	items := make([]models.Comment, 0, len(raw))
	skipped := 0
	for _, entry := range raw {
		comment, ok := validation.DecodeStoredComment(entry)
		if !ok {
			skipped++
			continue
		}
		items = append(items, comment)
	}

	if skipped > 0 {
		s.log.Warn().Str("article_id", articleID).Int("skipped", skipped).Msg("Skipped malformed comment entries")
	}

	return &models.CommentList{Items: items}, nil
}

// AddComment validates, stores and returns a new comment. The list is
// trimmed to the newest MaxCommentsPerArticle entries after every write.
func (s *commentService) AddComment(ctx context.Context, articleID string, input models.CommentInput) (*models.Comment, error) {
	if err := checkArticleID(articleID); err != nil {
		return nil, err
	}

	normalized, verrs := validation.NormalizeComment(input)
	if len(verrs) > 0 {
		return nil, &InputError{Kind: ErrValidation, Fields: verrs}
	}

	now := s.now().UTC()
	comment := models.Comment{
		ID:      strconv.FormatInt(now.UnixMilli(), 10),
		Author:  normalized.Author,
		Content: normalized.Content,
		Date:    now.Format(models.CommentDateLayout),
	}

	value, err := encodeComment(comment)
	if err != nil {
		return nil, err
	}

	key := repository.CommentListKey(articleID)
	if err := s.store.LPush(ctx, key, value); err != nil {
		return nil, &StorageError{Op: "lpush", Err: err}
	}
	if err := s.store.LTrim(ctx, key, 0, models.MaxCommentsPerArticle-1); err != nil {
		return nil, &StorageError{Op: "ltrim", Err: err}
	}

	s.log.Info().
		Str("article_id", articleID).
		Str("comment_id", comment.ID).
		Msg("Comment added")

	return &comment, nil
}

// encodeComment produces the stored form: a JSON string whose contents are
// the JSON-encoded comment
func encodeComment(c models.Comment) (json.RawMessage, error) {
	inner, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode comment: %w", err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		return nil, fmt.Errorf("failed to encode comment: %w", err)
	}
	return outer, nil
}
