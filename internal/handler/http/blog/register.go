package blog

import (
	"log/slog"
	"net/http"

	"tubescribe/internal/common/pagination"
	artUC "tubescribe/internal/usecase/article"
	"tubescribe/internal/usecase/pipeline"
)

// Register registers the blog endpoints with the given mux.
// Authentication is enforced by the auth middleware wrapping the whole mux,
// so handlers here only consume the identity it puts in the context.
func Register(mux *http.ServeMux, pipe pipeline.Service, svc artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST /generate-blog", GenerateHandler{
		Pipeline: pipe,
		Logger:   logger,
	})
	mux.Handle("GET /blog-list", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /blog-details/", GetHandler{
		Svc:    svc,
		Logger: logger,
	})
}
