package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/blog-engagement-api/internal/mocks"
	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/service"
	"github.com/rs/zerolog"
)

func seededServices(t *testing.T) *service.Services {
	t.Helper()
	services := service.NewServices(mocks.NewMockStore(), zerolog.Nop())
	for _, content := range []string{"first", "second, with comma"} {
		_, err := services.Comment.AddComment(context.Background(), "post", models.CommentInput{Author: "A", Content: content})
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
	}
	return services
}

func TestExportComments_Formats(t *testing.T) {
	services := seededServices(t)
	ctx := context.Background()

	t.Run("ndjson", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := services.Export.ExportComments(ctx, &buf, "post", service.FormatNDJSON)
		if err != nil {
			t.Fatalf("ExportComments failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if n != 2 || len(lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d (n=%d)", len(lines), n)
		}
		var c models.Comment
		if err := json.Unmarshal([]byte(lines[0]), &c); err != nil {
			t.Fatalf("invalid ndjson line: %v", err)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if _, err := services.Export.ExportComments(ctx, &buf, "post", service.FormatJSON); err != nil {
			t.Fatalf("ExportComments failed: %v", err)
		}
		var items []models.Comment
		if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
			t.Fatalf("invalid json array: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("Expected 2 items, got %d", len(items))
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if _, err := services.Export.ExportComments(ctx, &buf, "post", service.FormatCSV); err != nil {
			t.Fatalf("ExportComments failed: %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("invalid csv: %v", err)
		}
		if len(records) != 3 || records[0][0] != "id" {
			t.Fatalf("Expected header plus 2 rows, got %v", records)
		}
		if records[1][2] != "second, with comma" {
			t.Errorf("Expected newest comment first, got %q", records[1][2])
		}
	})
}

func TestExportComments_EmptyJSON(t *testing.T) {
	services := service.NewServices(mocks.NewMockStore(), zerolog.Nop())

	var buf bytes.Buffer
	n, err := services.Export.ExportComments(context.Background(), &buf, "none", service.FormatJSON)
	if err != nil {
		t.Fatalf("ExportComments failed: %v", err)
	}
	if n != 0 || strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Expected empty array, got %q", buf.String())
	}
}

func TestExportComments_UnsupportedFormat(t *testing.T) {
	store := mocks.NewMockStore()
	services := service.NewServices(store, zerolog.Nop())

	var buf bytes.Buffer
	if _, err := services.Export.ExportComments(context.Background(), &buf, "post", "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if store.TotalCalls() != 0 {
		t.Error("Unsupported format must fail before reading the store")
	}
}

func TestHealthService(t *testing.T) {
	store := mocks.NewMockStore()
	services := service.NewServices(store, zerolog.Nop())

	if err := services.Health.Check(context.Background()); err != nil {
		t.Fatalf("Expected healthy store, got %v", err)
	}

	store.PingErr = context.DeadlineExceeded
	if err := services.Health.Check(context.Background()); err == nil {
		t.Error("Expected unhealthy store")
	}
}
