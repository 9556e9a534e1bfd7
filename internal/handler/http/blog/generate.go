package blog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tubescribe/internal/domain/entity"
	"tubescribe/internal/handler/http/auth"
	"tubescribe/internal/handler/http/requestid"
	"tubescribe/internal/handler/http/respond"
	"tubescribe/internal/observability/logging"
	"tubescribe/internal/usecase/pipeline"
)

type generateRequest struct {
	Link string `json:"link"`
}

type generateResponse struct {
	Content string `json:"content" example:"  Introduction\nThe talk opens with..."`
}

// GenerateHandler accepts a video link and runs the full generation pipeline
// synchronously: download, transcription, article generation, persistence.
// The request blocks until the article is ready or a stage fails.
type GenerateHandler struct {
	Pipeline pipeline.Service
	Logger   *slog.Logger
}

// ServeHTTP 記事生成
// @Summary      動画リンクから記事を生成
// @Description  動画の音声をダウンロードして文字起こしし、ブログ記事を生成して保存します。処理は同期で、完了まで応答を返しません。
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body generateRequest true "動画リンク"
// @Success      200 {object} generateResponse "生成された記事本文"
// @Failure      400 {object} map[string]string "Invalid data sent"
// @Failure      401 {string} string "Authentication required"
// @Failure      422 {object} map[string]string "Transcript was empty"
// @Failure      500 {object} map[string]string "Pipeline stage failed"
// @Router       /generate-blog [post]
func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	ctx := r.Context()
	startTime := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	ownerID, ok := auth.UserID(ctx)
	if !ok {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Generate request rejected",
			"reason", "malformed_body",
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid data sent"})
		return
	}

	if err := entity.ValidateLink(req.Link); err != nil {
		logger.Warn("Generate request rejected",
			"reason", "invalid_link",
			"error", err.Error(),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid data sent"})
		return
	}

	logger.Info("Generate request accepted",
		"owner_id", ownerID,
		"link", req.Link,
		"request_id", reqID)

	article, err := h.Pipeline.Run(ctx, ownerID, req.Link)
	if err != nil {
		logger.Error("Generation pipeline failed",
			"owner_id", ownerID,
			"link", req.Link,
			"error", err.Error(),
			"duration_ms", time.Since(startTime).Milliseconds(),
			"request_id", reqID)
		respondPipelineError(w, err)
		return
	}

	logger.Info("Article generated",
		"owner_id", ownerID,
		"article_id", article.ID,
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, generateResponse{Content: article.Content})
}

// respondPipelineError maps pipeline stage failures to HTTP statuses.
// Each stage failure carries its own message so clients can tell which
// external call went wrong; the status stays 500 because the caller cannot
// fix any of them by changing the request.
func respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyTranscript):
		respond.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "transcript was empty, no article generated"})
	case errors.Is(err, pipeline.ErrFetchFailed):
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "could not download the video audio"})
	case errors.Is(err, pipeline.ErrTranscriptionFailed):
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "transcription failed"})
	case errors.Is(err, pipeline.ErrGenerationFailed):
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "article generation failed"})
	case errors.Is(err, pipeline.ErrPersistFailed):
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "article could not be saved"})
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
