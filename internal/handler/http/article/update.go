package article

import (
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/pathutil"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

type UpdateHandler struct {
	Svc         Service
	MaxFileSize int64
}

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  指定されたフィールドのみ更新します。ファイルを送ったスロットは古いメディアを削除して差し替えます。作成者または管理者のみ実行できます。
// @Tags         articles
// @Security     CookieAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path     string true  "記事ID"
// @Param        title     formData string false "タイトル"
// @Param        summary   formData string false "概要"
// @Param        content   formData string false "本文"
// @Param        category  formData string false "カテゴリ"
// @Param        author    formData string false "著者"
// @Param        imageUrl  formData file   false "画像"
// @Param        videoUrl  formData file   false "動画"
// @Param        audioUrl  formData file   false "音声"
// @Success      200 {object} respond.Envelope{data=DTO} "更新後の記事"
// @Failure      400 {object} respond.ErrorBody "入力エラー"
// @Failure      401 {object} respond.ErrorBody "認証が必要です / 権限がありません"
// @Failure      404 {object} respond.ErrorBody "記事が見つかりません"
// @Failure      502 {object} respond.ErrorBody "メディアストレージ障害"
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ArticleID(r.PathValue("id"))
	if err != nil {
		respond.FromError(w, artUC.ErrArticleNotFound)
		return
	}
	p, _ := auth.PrincipalFrom(r.Context())

	form, err := parseArticleForm(r, h.MaxFileSize)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	defer form.Close()

	art, err := h.Svc.Update(r.Context(), p, artUC.UpdateInput{
		ID:       id,
		Title:    form.Title,
		Summary:  form.Summary,
		Content:  form.Content,
		Category: form.Category,
		Author:   form.Author,
		Files:    form.Files,
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, toDTO(art))
}
