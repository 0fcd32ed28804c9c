package article

import (
	"net/http"

	"news-portal/internal/handler/http/auth"
	"news-portal/internal/handler/http/respond"
	artUC "news-portal/internal/usecase/article"
)

type CreateHandler struct {
	Svc         Service
	MaxFileSize int64
}

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  multipart/form-data で記事を作成します。imageUrl は必須、videoUrl と audioUrl は任意です。
// @Tags         articles
// @Security     CookieAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        title     formData string true  "タイトル（200文字以内）"
// @Param        summary   formData string true  "概要（300文字以内）"
// @Param        content   formData string true  "本文（HTML）"
// @Param        category  formData string true  "カテゴリ"
// @Param        author    formData string true  "著者"
// @Param        imageUrl  formData file   true  "画像"
// @Param        videoUrl  formData file   false "動画"
// @Param        audioUrl  formData file   false "音声"
// @Success      201 {object} respond.Envelope{data=DTO} "作成された記事"
// @Failure      400 {object} respond.ErrorBody "入力エラー"
// @Failure      401 {object} respond.ErrorBody "認証が必要です"
// @Failure      403 {object} respond.ErrorBody "管理者権限が必要です"
// @Failure      502 {object} respond.ErrorBody "メディアストレージ障害"
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFrom(r.Context())

	form, err := parseArticleForm(r, h.MaxFileSize)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	defer form.Close()

	art, err := h.Svc.Create(r.Context(), p, artUC.CreateInput{
		Title:    value(form.Title),
		Summary:  value(form.Summary),
		Content:  value(form.Content),
		Category: value(form.Category),
		Author:   value(form.Author),
		Files:    form.Files,
	})
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.OK(w, http.StatusCreated, toDTO(art))
}
