package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-engagement-api/internal/api"
	"github.com/blog-engagement-api/internal/config"
	"github.com/blog-engagement-api/internal/models"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/blog-engagement-api/internal/service"
	"github.com/blog-engagement-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newRouter(store repository.Store) http.Handler {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 64 * 1024},
		CORS:   config.CORSConfig{DevelopmentOrigin: "http://localhost:5173"},
	}
	return api.NewRouter(service.NewServices(store, zerolog.Nop()), cfg, zerolog.Nop())
}

// BenchmarkRegisterLike measures distinct likes through the service layer
func BenchmarkRegisterLike(b *testing.B) {
	svc := service.NewLikeService(repository.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := svc.RegisterLike(ctx, "bench", fmt.Sprintf("10.0.%d.%d:UA", i/256, i%256)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRegisterLikeParallel measures likes contending on one article
func BenchmarkRegisterLikeParallel(b *testing.B) {
	svc := service.NewLikeService(repository.NewMemoryStore(), zerolog.Nop())
	ctx := context.Background()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			i++
			svc.RegisterLike(ctx, "hot", fmt.Sprintf("fp-%d", i%1000))
		}
	})
}

// BenchmarkListComments measures decoding a full comment history
func BenchmarkListComments(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := service.NewCommentService(store, zerolog.Nop(), nil)
	ctx := context.Background()

	for i := 0; i < models.MaxCommentsPerArticle; i++ {
		svc.AddComment(ctx, "bench", models.CommentInput{
			Author:  fmt.Sprintf("Reader %d", i),
			Content: strings.Repeat("lorem ipsum ", 20),
		})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		list, err := svc.ListComments(ctx, "bench")
		if err != nil {
			b.Fatal(err)
		}
		if len(list.Items) != models.MaxCommentsPerArticle {
			b.Fatalf("expected %d comments, got %d", models.MaxCommentsPerArticle, len(list.Items))
		}
	}

	b.ReportMetric(float64(models.MaxCommentsPerArticle*b.N)/b.Elapsed().Seconds(), "comments/sec")
}

// BenchmarkAddCommentAtCap measures writes once the history is full
func BenchmarkAddCommentAtCap(b *testing.B) {
	store := repository.NewMemoryStore()
	svc := service.NewCommentService(store, zerolog.Nop(), nil)
	ctx := context.Background()
	input := models.CommentInput{Author: "Ann", Content: "Nice post"}

	for i := 0; i < models.MaxCommentsPerArticle; i++ {
		svc.AddComment(ctx, "bench", input)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := svc.AddComment(ctx, "bench", input); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecodeStoredComment measures tolerant decoding of one entry
func BenchmarkDecodeStoredComment(b *testing.B) {
	inner, _ := json.Marshal(models.Comment{ID: "1", Author: "A", Content: "C", Date: "2024-01-01T00:00:00.000Z"})
	raw, _ := json.Marshal(string(inner))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := validation.DecodeStoredComment(raw); !ok {
			b.Fatal("decode failed")
		}
	}
}

// BenchmarkPostCommentHTTP measures the full POST path through gin
func BenchmarkPostCommentHTTP(b *testing.B) {
	router := newRouter(repository.NewMemoryStore())
	body := `{"author":"Ann","content":"Hello from the benchmark"}`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("POST", "/api/comments/bench", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			b.Fatalf("expected 201, got %d", w.Code)
		}
	}
}
