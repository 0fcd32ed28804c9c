package article

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/requestid"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
)

type ListHandler struct {
	Svc           Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得（ページネーション・フィルタ対応）
// @Description  記事をページ単位で取得します。category, select, sort と任意フィールドのフィルタ（field_op または field[op]）を指定できます。
// @Tags         articles
// @Produce      json
// @Param        page      query    int     false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit     query    int     false  "1ページあたりの件数" default(10) minimum(1) maximum(100)
// @Param        category  query    string  false  "カテゴリ（All は全件）"
// @Param        sort      query    string  false  "並び順 例: -createdAt,title"
// @Param        select    query    string  false  "返すフィールド 例: title,category"
// @Success      200 {object} pagination.Response[DTO] "ページネーション付き記事一覧"
// @Failure      400 {object} respond.ErrorBody "不正なクエリ"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	lq, err := parseListQuery(r.URL.Query(), h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid list query", slog.Any("error", err))
		pagination.RecordError("validation")
		pagination.RecordRequest(http.StatusBadRequest, lq.Input.Page.Page)
		respond.FromError(w, err)
		return
	}

	result, err := h.Svc.List(ctx, lq.Input)
	if err != nil {
		errorType := "database"
		if errors.Is(err, entity.ErrValidationFailed) {
			errorType = "validation"
		}
		pagination.LogError(logger, reqID, lq.Input.Page, err, errorType)
		pagination.RecordError(errorType)
		pagination.RecordRequest(respond.StatusFor(err), lq.Input.Page.Page)
		respond.FromError(w, err)
		return
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, lq.Input.Page.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.LogResponse(logger, reqID, lq.Input.Page, len(result.Data), result.Pagination.Total, duration)

	if len(lq.Select) == 0 {
		dtos := make([]DTO, 0, len(result.Data))
		for _, a := range result.Data {
			dtos = append(dtos, toDTO(a))
		}
		respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Pagination))
		return
	}

	rows := make([]map[string]any, 0, len(result.Data))
	for _, a := range result.Data {
		rows = append(rows, toDTO(a).project(lq.Select))
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(rows, result.Pagination))
}
