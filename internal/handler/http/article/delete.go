package article

import (
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

type DeleteHandler struct{ Svc Service }

// ServeHTTP 記事削除
// @Summary      記事削除
// @Description  記事と添付メディアを削除します。作成者または管理者のみ実行できます。
// @Tags         articles
// @Security     CookieAuth
// @Produce      json
// @Param        id path string true "記事ID"
// @Success      200 {object} respond.Envelope "削除成功"
// @Failure      401 {object} respond.ErrorBody "認証が必要です / 権限がありません"
// @Failure      404 {object} respond.ErrorBody "記事が見つかりません"
// @Failure      502 {object} respond.ErrorBody "メディアストレージ障害"
// @Router       /articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ArticleID(r.PathValue("id"))
	if err != nil {
		respond.FromError(w, artUC.ErrArticleNotFound)
		return
	}
	p, _ := auth.PrincipalFrom(r.Context())

	if err := h.Svc.Delete(r.Context(), p, id); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, struct{}{})
}
