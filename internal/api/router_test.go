package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LJTian/MideastHub/internal/cache"
	"github.com/LJTian/MideastHub/internal/news"
	"github.com/LJTian/MideastHub/internal/processor"
	"github.com/LJTian/MideastHub/internal/source"
	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	reg := source.NewRegistry(source.DefaultSources())
	agg := func(ctx context.Context, sources []*source.Source) []*processor.Article {
		ts := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
		out := make([]*processor.Article, 0, len(sources))
		for i, src := range sources {
			out = append(out, &processor.Article{
				ID:      src.ID,
				Title:   "story " + src.ID,
				Link:    "http://" + src.ID + "/1",
				Source:  src,
				PubDate: ts.Add(-time.Duration(i) * time.Minute),
			})
		}
		return out
	}
	svc := news.NewService(reg, cache.New(time.Minute, "", reg), agg)

	r := gin.New()
	NewServer(svc).RegisterRoutes(r)
	return r
}

type newsResponse struct {
	Articles []struct {
		ID      string    `json:"id"`
		Title   string    `json:"title"`
		Link    string    `json:"link"`
		PubDate time.Time `json:"pubDate"`
		Source  struct {
			ID      string `json:"id"`
			Country string `json:"country"`
		} `json:"source"`
		Categories []string `json:"categories"`
	} `json:"articles"`
	Sources     []struct{ Country string } `json:"sources"`
	LastUpdated time.Time                  `json:"lastUpdated"`
	TotalCount  int                        `json:"totalCount"`
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}

func TestGetNewsShape(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var res newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.TotalCount != len(res.Articles) {
		t.Fatalf("totalCount = %d, articles = %d", res.TotalCount, len(res.Articles))
	}
	if res.LastUpdated.IsZero() {
		t.Fatalf("lastUpdated should be set")
	}
	if len(res.Articles) == 0 {
		t.Fatalf("expected some articles from stub aggregate")
	}
	// pubDate 序列化为 ISO-8601 字符串且可回解，上面 Unmarshal 已验证
}

func TestGetNewsLimit(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/news?limit=2", nil))

	var res newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(res.Articles) != 2 || res.TotalCount != 2 {
		t.Fatalf("limit=2: articles=%d totalCount=%d", len(res.Articles), res.TotalCount)
	}
}

func TestGetNewsBadLimitFallsBack(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/news?limit=banana", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("garbage limit should fall back to default, status = %d", w.Code)
	}
}

func TestGetNewsCountryFilter(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/news?country=iran", nil))

	var res newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	for _, a := range res.Articles {
		if a.Source.Country != "iran" {
			t.Fatalf("article from %s leaked through filter", a.Source.Country)
		}
	}
	for _, s := range res.Sources {
		if s.Country != "iran" {
			t.Fatalf("non-iranian source in response source list")
		}
	}
}

func TestPostNewsForcesRefresh(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/news", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body = %s", w.Code, w.Body.String())
	}

	var res struct {
		Message       string `json:"message"`
		ArticlesCount int    `json:"articlesCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.Message == "" {
		t.Fatalf("refresh should return a message")
	}
	if res.ArticlesCount != len(source.DefaultSources()) {
		t.Fatalf("articlesCount = %d, want %d", res.ArticlesCount, len(source.DefaultSources()))
	}
}
