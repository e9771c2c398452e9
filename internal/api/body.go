package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/blog-engagement-api/internal/models"
	"github.com/gin-gonic/gin"
)

// readCommentInput decodes a comment body leniently. A body that is a JSON
// string is decoded a second time. Anything unreadable, oversized or not an
// object yields empty fields, which validation then rejects.
func readCommentInput(c *gin.Context, maxBytes int64) models.CommentInput {
	fields := decodeObject(readBody(c, maxBytes))
	return models.CommentInput{
		Author:  fieldText(fields["author"]),
		Content: fieldText(fields["content"]),
	}
}

func readBody(c *gin.Context, maxBytes int64) []byte {
	if c.Request.Body == nil {
		return nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
	if err != nil {
		return nil
	}
	return data
}

func decodeObject(data []byte) map[string]json.RawMessage {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return map[string]json.RawMessage{}
		}
		data = []byte(inner)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

// fieldText renders a body field as text: strings as-is, null or absent as
// empty, anything else as its JSON text
func fieldText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}
