package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blog-engagement-api/internal/models"
)

// MaxArticleIDLength bounds the article id, and with it every storage key
const MaxArticleIDLength = 256

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateArticleID checks that id is usable as a single path segment
func ValidateArticleID(id string) *ValidationError {
	switch {
	case id == "":
		return &ValidationError{Field: "id", Message: "is required"}
	case strings.Contains(id, "/"):
		return &ValidationError{Field: "id", Message: "must be a single path segment"}
	case len(id) > MaxArticleIDLength:
		return &ValidationError{Field: "id", Message: fmt.Sprintf("must be at most %d bytes", MaxArticleIDLength)}
	}
	return nil
}

// NormalizeComment trims and truncates a submitted comment. The returned
// errors list every field that is empty after trimming.
func NormalizeComment(input models.CommentInput) (models.CommentInput, []ValidationError) {
	out := models.CommentInput{
		Author:  Truncate(strings.TrimSpace(input.Author), models.MaxAuthorLength),
		Content: Truncate(strings.TrimSpace(input.Content), models.MaxContentLength),
	}

	var errors []ValidationError
	if out.Author == "" {
		errors = append(errors, ValidationError{Field: "author", Message: "is required"})
	}
	if out.Content == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "is required"})
	}
	return out, errors
}

// Truncate keeps at most max characters of s
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// storedComment mirrors models.Comment with pointers so missing or null
// fields can be told apart from empty strings.
type storedComment struct {
	ID      *string `json:"id"`
	Author  *string `json:"author"`
	Content *string `json:"content"`
	Date    *string `json:"date"`
}

// DecodeStoredComment parses one list entry. Entries are normally a JSON
// string holding the encoded comment; older entries may be the object itself.
// It returns false for anything that is not a complete comment.
func DecodeStoredComment(raw json.RawMessage) (models.Comment, bool) {
	data := bytes.TrimSpace(raw)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return models.Comment{}, false
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if len(data) == 0 || data[0] != '{' {
		return models.Comment{}, false
	}

	var sc storedComment
	if err := json.Unmarshal(data, &sc); err != nil {
		return models.Comment{}, false
	}
	if sc.ID == nil || sc.Author == nil || sc.Content == nil || sc.Date == nil {
		return models.Comment{}, false
	}

	return models.Comment{
		ID:      *sc.ID,
		Author:  *sc.Author,
		Content: *sc.Content,
		Date:    *sc.Date,
	}, true
}
