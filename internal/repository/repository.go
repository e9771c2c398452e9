package repository

import (
	"context"
	"encoding/json"
	"math"
)

// Store defines the key-value primitives the engagement services rely on.
// Every method must be atomic for its key; callers never combine them in a
// read-modify-write sequence.
type Store interface {
	// Get returns the counter stored at key, or 0 when the key is absent
	Get(ctx context.Context, key string) (int64, error)

	// Incr increments the counter at key and returns the new value
	Incr(ctx context.Context, key string) (int64, error)

	// SAdd adds member to the set at key and reports whether it was newly added
	SAdd(ctx context.Context, key, member string) (bool, error)

	// LPush prepends value to the list at key
	LPush(ctx context.Context, key string, value json.RawMessage) error

	// LRange returns the inclusive [start, stop] window of the list at key,
	// head first. Negative indices count from the tail.
	LRange(ctx context.Context, key string, start, stop int) ([]json.RawMessage, error)

	// LTrim keeps only the inclusive [start, stop] window of the list at key
	LTrim(ctx context.Context, key string, start, stop int) error

	Ping(ctx context.Context) error
	Close() error
}

const (
	likeCountPrefix   = "likes:count:"
	likeSetPrefix     = "likes:set:"
	commentListPrefix = "comments:list:"
)

// LikeCountKey returns the counter key holding an article's like count
func LikeCountKey(articleID string) string {
	return likeCountPrefix + articleID
}

// LikeSetKey returns the set key holding an article's liker fingerprints
func LikeSetKey(articleID string) string {
	return likeSetPrefix + articleID
}

// CommentListKey returns the list key holding an article's comments
func CommentListKey(articleID string) string {
	return commentListPrefix + articleID
}

// ListWindow resolves Redis-style inclusive list indices against a list of
// the given length. It returns the zero-based offset of the first element and
// the number of elements in the window; limit is 0 when the window is empty.
func ListWindow(start, stop, length int) (offset, limit int) {
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start >= length || start > stop {
		return 0, 0
	}
	return start, stop - start + 1
}

// needsLength reports whether resolving the window requires the list length
func needsLength(start, stop int) bool {
	return start < 0 || stop < 0
}

// unboundedLength stands in for the list length when both indices are
// non-negative and the real length does not change the window.
const unboundedLength = math.MaxInt
