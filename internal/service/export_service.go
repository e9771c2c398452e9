package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/blog-engagement-api/internal/models"
	"github.com/rs/zerolog"
)

// Export formats
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatCSV    = "csv"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	comments CommentService
	log      zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(comments CommentService, log zerolog.Logger) *exportService {
	return &exportService{
		comments: comments,
		log:      log.With().Str("service", "export").Logger(),
	}
}

// ExportComments writes the article's readable comments to w and returns how
// many were written
func (s *exportService) ExportComments(ctx context.Context, w io.Writer, articleID, format string) (int, error) {
	switch format {
	case FormatJSON, FormatNDJSON, FormatCSV:
	default:
		return 0, fmt.Errorf("unsupported format: %s", format)
	}

	list, err := s.comments.ListComments(ctx, articleID)
	if err != nil {
		return 0, err
	}

	s.log.Info().Str("article_id", articleID).Str("format", format).Msg("Starting comments export")

	switch format {
	case FormatNDJSON:
		err = writeCommentsNDJSON(w, list.Items)
	case FormatCSV:
		err = writeCommentsCSV(w, list.Items)
	default:
		err = writeCommentsJSON(w, list.Items)
	}
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("count", len(list.Items)).Msg("Comments export completed")
	return len(list.Items), nil
}

func writeCommentsNDJSON(w io.Writer, comments []models.Comment) error {
	enc := json.NewEncoder(w)
	for i := range comments {
		if err := enc.Encode(&comments[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeCommentsJSON(w io.Writer, comments []models.Comment) error {
	if _, err := w.Write([]byte("[")); err != nil {
		return err
	}
	for i := range comments {
		if i > 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		data, err := json.Marshal(&comments[i])
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte("]\n"))
	return err
}

func writeCommentsCSV(w io.Writer, comments []models.Comment) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write([]string{"id", "author", "content", "date"}); err != nil {
		return err
	}
	for _, c := range comments {
		if err := writer.Write([]string{c.ID, c.Author, c.Content, c.Date}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
