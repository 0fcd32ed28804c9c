package article

import (
	"net/http"

	"news-portal/internal/handler/http/respond"
)

type UploadHandler struct {
	Svc         Service
	MaxFileSize int64
}

// ServeHTTP メディアアップロード
// @Summary      メディアアップロード
// @Description  記事を作らずにファイルだけをアップロードし、URLを返します
// @Tags         articles
// @Security     CookieAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        imageUrl  formData file false "画像"
// @Param        videoUrl  formData file false "動画"
// @Param        audioUrl  formData file false "音声"
// @Success      200 {object} respond.Envelope{data=MediaURLs} "アップロード結果"
// @Failure      400 {object} respond.ErrorBody "ファイルがありません / 形式エラー"
// @Failure      401 {object} respond.ErrorBody "認証が必要です"
// @Failure      403 {object} respond.ErrorBody "管理者権限が必要です"
// @Failure      502 {object} respond.ErrorBody "メディアストレージ障害"
// @Router       /articles/upload/files [post]
func (h UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form, err := parseArticleForm(r, h.MaxFileSize)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	defer form.Close()

	assets, err := h.Svc.UploadFiles(r.Context(), form.Files)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "files uploaded successfully", toMediaURLs(assets))
}
