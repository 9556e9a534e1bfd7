package blog_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tubescribe/internal/common/pagination"
	"tubescribe/internal/domain/entity"
	"tubescribe/internal/handler/http/blog"
	artUC "tubescribe/internal/usecase/article"
)

func listHandler(repo *stubArticleRepo) blog.ListHandler {
	return blog.ListHandler{
		Svc:           artUC.Service{Repo: repo},
		PaginationCfg: pagination.DefaultConfig(),
		Logger:        slog.Default(),
	}
}

func TestListHandler_OnlyOwnArticles(t *testing.T) {
	now := time.Now()
	repo := &stubArticleRepo{byOwner: map[int64][]*entity.Article{
		1: {
			{ID: 2, OwnerID: 1, SourceTitle: "Second", CreatedAt: now},
			{ID: 1, OwnerID: 1, SourceTitle: "First", CreatedAt: now.Add(-time.Hour)},
		},
		2: {
			{ID: 3, OwnerID: 2, SourceTitle: "Someone else's", CreatedAt: now},
		},
	}}
	h := listHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/blog-list", 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp pagination.Response[blog.DTO]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("returned %d articles, want 2", len(resp.Data))
	}
	if resp.Data[0].ID != 2 {
		t.Errorf("first ID = %d, want 2 (newest first)", resp.Data[0].ID)
	}
	for _, dto := range resp.Data {
		if dto.SourceTitle == "Someone else's" {
			t.Error("response leaked another owner's article")
		}
	}
}

func TestListHandler_EmptyList(t *testing.T) {
	h := listHandler(&stubArticleRepo{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/blog-list", 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var resp pagination.Response[blog.DTO]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("returned %d articles, want 0", len(resp.Data))
	}
}

func TestListHandler_Pagination(t *testing.T) {
	now := time.Now()
	articles := make([]*entity.Article, 0, 5)
	for i := 5; i >= 1; i-- {
		articles = append(articles, &entity.Article{ID: int64(i), OwnerID: 1, CreatedAt: now})
	}
	h := listHandler(&stubArticleRepo{byOwner: map[int64][]*entity.Article{1: articles}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/blog-list?page=2&limit=2", 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	var resp pagination.Response[blog.DTO]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("returned %d articles, want 2", len(resp.Data))
	}
	if resp.Data[0].ID != 3 {
		t.Errorf("first ID on page 2 = %d, want 3", resp.Data[0].ID)
	}
	if resp.Pagination.Total != 5 {
		t.Errorf("total = %d, want 5", resp.Pagination.Total)
	}
}

func TestListHandler_InvalidPageParam(t *testing.T) {
	h := listHandler(&stubArticleRepo{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodGet, "/blog-list?page=0", 1))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rec.Code)
	}
}

func TestListHandler_Unauthenticated(t *testing.T) {
	h := listHandler(&stubArticleRepo{})

	req := httptest.NewRequest(http.MethodGet, "/blog-list", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", rec.Code)
	}
}
