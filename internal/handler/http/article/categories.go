package article

import (
	"net/http"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/respond"
)

// CategoriesHandler カテゴリ一覧
// @Summary      カテゴリ一覧
// @Tags         articles
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]string}
// @Router       /categories [get]
func CategoriesHandler(w http.ResponseWriter, _ *http.Request) {
	respond.OK(w, http.StatusOK, entity.Categories)
}
