package blog

import (
	"errors"
	"log/slog"
	"net/http"

	"tubescribe/internal/handler/http/auth"
	"tubescribe/internal/handler/http/pathutil"
	"tubescribe/internal/handler/http/requestid"
	"tubescribe/internal/handler/http/respond"
	"tubescribe/internal/observability/logging"
	artUC "tubescribe/internal/usecase/article"
)

// GetHandler serves a single article by ID. Only the article's owner may
// read it; anyone else gets 403 regardless of whether they are logged in.
type GetHandler struct {
	Svc    artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Description  記事をIDで取得します。記事の所有者のみ閲覧できます。
// @Tags         blog
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "記事ID"
// @Success      200 {object} DTO "記事詳細"
// @Failure      400 {string} string "Invalid article ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Forbidden - article belongs to another user"
// @Failure      404 {string} string "Article not found"
// @Router       /blog-details/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	ownerID, ok := auth.UserID(ctx)
	if !ok {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/blog-details/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	article, err := h.Svc.GetForOwner(ctx, id, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, artUC.ErrInvalidArticleID):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, artUC.ErrArticleNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		case errors.Is(err, artUC.ErrAccessDenied):
			logger.Warn("Cross-owner article access denied",
				"article_id", id,
				"owner_id", ownerID,
				"request_id", reqID)
			respond.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		default:
			logger.Error("Failed to get article",
				"article_id", id,
				"error", err.Error(),
				"request_id", reqID)
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(article))
}
