package article

import (
	"net/http"

	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

type GetHandler struct{ Svc Service }

// ServeHTTP 記事詳細取得
// @Summary      記事詳細取得
// @Description  指定されたIDの記事を取得します
// @Tags         articles
// @Produce      json
// @Param        id path string true "記事ID"
// @Success      200 {object} respond.Envelope{data=DTO} "記事詳細"
// @Failure      404 {object} respond.ErrorBody "記事が見つかりません"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ArticleID(r.PathValue("id"))
	if err != nil {
		// 形式不正なIDは存在しない記事として扱う
		respond.FromError(w, artUC.ErrArticleNotFound)
		return
	}

	art, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, toDTO(art))
}
