package models

// Comment is a single reader comment on a blog article
type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// CommentInput is the normalized body of a comment submission
type CommentInput struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// CommentList is the response body for a comment listing
type CommentList struct {
	Items []Comment `json:"items"`
}

// CommentResponse wraps a newly created comment
type CommentResponse struct {
	Item Comment `json:"item"`
}

const (
	// MaxAuthorLength is the maximum number of characters kept from an author name
	MaxAuthorLength = 80

	// MaxContentLength is the maximum number of characters kept from a comment body
	MaxContentLength = 2000

	// MaxCommentsPerArticle bounds the stored history of each article
	MaxCommentsPerArticle = 500

	// CommentDateLayout matches the millisecond ISO-8601 form browsers produce
	CommentDateLayout = "2006-01-02T15:04:05.000Z"
)
