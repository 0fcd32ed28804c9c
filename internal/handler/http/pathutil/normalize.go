// Package pathutil validates path identifiers and collapses them for
// metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// Static segments under /api/articles that must not be read as ids.
var staticArticlePaths = map[string]bool{
	"/api/articles/feed.rss":     true,
	"/api/articles/upload/files": true,
}

// pathPatterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/[A-Za-z0-9-]+$`), Template: "/api/articles/:id"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath converts paths with ids to their template so that metric
// labels stay bounded.
//
//	NormalizePath("/api/articles/665f1c2e9b1d4a0012345678") // "/api/articles/:id"
//	NormalizePath("/api/articles/feed.rss")                 // unchanged
//	NormalizePath("/api/articles?page=2")                   // "/api/articles"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if staticArticlePaths[path] {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
