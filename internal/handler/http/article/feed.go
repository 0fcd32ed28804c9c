package article

import (
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"news-portal/internal/common/pagination"
	"news-portal/internal/handler/http/respond"
	"news-portal/internal/observability/logging"
	artUC "news-portal/internal/usecase/article"
	"news-portal/internal/utils/text"
)

// feedSize is the number of articles published in the feed.
const feedSize = 20

// excerptLength bounds the plain-text body carried in each feed item.
const excerptLength = 400

// FeedConfig describes the channel of the RSS feed.
type FeedConfig struct {
	Title       string
	Description string
	// BaseURL is the public site address used for item links.
	BaseURL string
}

type FeedHandler struct {
	Svc    Service
	Feed   FeedConfig
	Logger *slog.Logger
}

// ServeHTTP RSSフィード
// @Summary      RSSフィード
// @Description  最新20件の記事を RSS 2.0 で返します
// @Tags         articles
// @Produce      xml
// @Success      200 {string} string "RSS 2.0"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /articles/feed.rss [get]
func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	result, err := h.Svc.List(ctx, artUC.ListInput{Page: pagination.Params{Page: 1, Limit: feedSize}})
	if err != nil {
		logger.Error("failed to load feed articles", slog.Any("error", err))
		respond.FromError(w, err)
		return
	}

	base := strings.TrimRight(h.Feed.BaseURL, "/")
	feed := &feeds.Feed{
		Title:       h.Feed.Title,
		Link:        &feeds.Link{Href: base + "/"},
		Description: h.Feed.Description,
		Created:     time.Now().UTC(),
	}
	for _, a := range result.Data {
		link := base + "/articles/" + a.ID.String()
		item := &feeds.Item{
			Id:          link,
			Title:       a.Title,
			Link:        &feeds.Link{Href: link},
			Description: a.Summary,
			Content:     text.Excerpt(a.Content, excerptLength),
			Author:      &feeds.Author{Name: a.Author},
			Created:     a.CreatedAt,
			Updated:     a.UpdatedAt,
		}
		if a.ImageURL != "" {
			item.Enclosure = &feeds.Enclosure{Url: a.ImageURL, Type: imageType(a.ImageURL), Length: "0"}
		}
		feed.Items = append(feed.Items, item)
	}
	if len(result.Data) > 0 {
		feed.Updated = result.Data[0].UpdatedAt
	}

	body, err := feed.ToRss()
	if err != nil {
		logger.Error("failed to render feed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func imageType(url string) string {
	if t := mime.TypeByExtension(path.Ext(url)); t != "" {
		return t
	}
	return "image/jpeg"
}
