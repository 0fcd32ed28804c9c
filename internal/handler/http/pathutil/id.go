package pathutil

import (
	"errors"
	"regexp"
	"strings"

	"news-portal/internal/domain/entity"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// idPattern admits Mongo ObjectIDs and UUIDs alike; the repository decides
// whether the id exists.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// ArticleID validates the {id} path segment.
//
//	id, err := pathutil.ArticleID(r.PathValue("id"))
func ArticleID(raw string) (entity.ArticleID, error) {
	raw = strings.TrimSpace(raw)
	if !idPattern.MatchString(raw) {
		return "", ErrInvalidID
	}
	return entity.ArticleID(raw), nil
}
