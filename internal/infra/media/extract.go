package media

import (
	"regexp"
	"strings"

	"news-portal/internal/domain/entity"
)

// publicIDPattern covers every extension the upload form accepts, so any
// asset this service stored can be deleted again.
var publicIDPattern = regexp.MustCompile(
	`(?i)/upload/(?:v\d+/)?(.+?)\.(?:` + strings.Join(entity.MediaExtensions, "|") + `)(?:$|[?#])`)

// ExtractPublicID returns the public id embedded in a delivery URL such as
//
//	https://res.cloudinary.com/demo/image/upload/v1700000000/news-portal/images/abc.jpg
//
// which yields "news-portal/images/abc". ok is false for URLs the store did
// not produce; callers must not delete anything in that case.
func ExtractPublicID(url string) (publicID string, ok bool) {
	m := publicIDPattern.FindStringSubmatch(url)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// resourceType picks the destroy resource type from the folder the asset was
// uploaded to. Cloudinary files audio under "video".
func resourceType(publicID string) string {
	id := "/" + strings.ToLower(publicID)
	if strings.Contains(id, "/videos/") || strings.Contains(id, "/audio/") {
		return "video"
	}
	return "image"
}
