// Package article implements the article lifecycle: create, update and delete
// with their media attachments, plus the read operations.
package article

import "news-portal/internal/domain/entity"

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

// Is makes the error match entity.ErrNotFound.
func (e notFoundError) Is(target error) bool { return target == entity.ErrNotFound }

// ErrArticleNotFound is returned when no article has the requested id.
var ErrArticleNotFound error = notFoundError("article not found")

// ErrNoFiles is returned by UploadFiles when the request carries no file.
var ErrNoFiles = &entity.ValidationError{Field: "files", Message: "please upload at least one file"}
