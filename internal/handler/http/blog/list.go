package blog

import (
	"log/slog"
	"net/http"
	"time"

	"tubescribe/internal/common/pagination"
	"tubescribe/internal/handler/http/auth"
	"tubescribe/internal/handler/http/requestid"
	"tubescribe/internal/handler/http/respond"
	"tubescribe/internal/observability/logging"
	artUC "tubescribe/internal/usecase/article"
)

// ListHandler serves the authenticated user's articles, newest first, with
// pagination.
type ListHandler struct {
	Svc           artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 記事一覧取得
// @Summary      自分の記事一覧取得（ページネーション対応）
// @Description  ログイン中のユーザーが生成した記事を新しい順に取得します。他のユーザーの記事は含まれません。
// @Tags         blog
// @Security     BearerAuth
// @Produce      json
// @Param        page   query    int  false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO] "ページネーション付き記事一覧"
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      401 {string} string "Authentication required"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /blog-list [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	ownerID, ok := auth.UserID(ctx)
	if !ok {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListByOwnerPaginated(ctx, ownerID, params)
	if err != nil {
		logger.Error("Failed to list articles",
			"owner_id", ownerID,
			"page", params.Page,
			"limit", params.Limit,
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, article := range result.Data {
		dtos = append(dtos, toDTO(article))
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	logger.Info("Article list served",
		"owner_id", ownerID,
		"page", params.Page,
		"returned_count", len(dtos),
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Pagination))
}
