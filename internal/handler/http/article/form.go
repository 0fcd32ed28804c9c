package article

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"news-portal/internal/domain/entity"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
const multipartMemory = 32 << 20

var errUnsupportedMedia = &entity.ValidationError{Field: "files", Message: "images, videos and audio files only"}

// articleForm is a parsed multipart article submission. Text fields are nil
// when absent from the form.
type articleForm struct {
	Title    *string
	Summary  *string
	Content  *string
	Category *string
	Author   *string
	Files    map[entity.MediaSlot]entity.MediaFile

	closers []io.Closer
}

// Close releases every opened file part.
func (f *articleForm) Close() {
	for _, c := range f.closers {
		_ = c.Close()
	}
	f.closers = nil
}

// value returns the field or "".
func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// parseArticleForm reads text fields and at most one file per media slot.
// Files must be accepted media no larger than maxFileSize. The caller must
// Close the form.
func parseArticleForm(r *http.Request, maxFileSize int64) (*articleForm, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, &entity.ValidationError{Field: "body", Message: "request must be multipart/form-data"}
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &entity.ValidationError{Field: "body", Message: "request body too large"}
		}
		return nil, &entity.ValidationError{Field: "body", Message: "malformed multipart form"}
	}

	form := &articleForm{Files: map[entity.MediaSlot]entity.MediaFile{}}
	text := map[string]**string{
		"title":    &form.Title,
		"summary":  &form.Summary,
		"content":  &form.Content,
		"category": &form.Category,
		"author":   &form.Author,
	}
	for name, dst := range text {
		if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
			v := strings.TrimSpace(vs[0])
			*dst = &v
		}
	}

	slots := make(map[string]entity.MediaSlot, len(entity.MediaSlots))
	for _, s := range entity.MediaSlots {
		slots[s.FieldName()] = s
	}

	for field, headers := range r.MultipartForm.File {
		slot, ok := slots[field]
		if !ok {
			form.Close()
			return nil, &entity.ValidationError{Field: field, Message: "unexpected file field"}
		}
		if len(headers) > 1 {
			form.Close()
			return nil, &entity.ValidationError{Field: field, Message: "only one file is allowed"}
		}
		file, err := openPart(headers[0], maxFileSize)
		if err != nil {
			form.Close()
			return nil, err
		}
		form.closers = append(form.closers, file.Body.(io.Closer))
		form.Files[slot] = file
	}
	return form, nil
}

func openPart(h *multipart.FileHeader, maxFileSize int64) (entity.MediaFile, error) {
	contentType := h.Header.Get("Content-Type")
	if !entity.IsAllowedMedia(h.Filename, contentType) {
		return entity.MediaFile{}, errUnsupportedMedia
	}
	if maxFileSize > 0 && h.Size > maxFileSize {
		return entity.MediaFile{}, &entity.ValidationError{
			Field:   "files",
			Message: fmt.Sprintf("file %s exceeds the %d byte limit", h.Filename, maxFileSize),
		}
	}
	f, err := h.Open()
	if err != nil {
		return entity.MediaFile{}, fmt.Errorf("open form file: %w", err)
	}
	return entity.MediaFile{
		Filename:    h.Filename,
		ContentType: contentType,
		Size:        h.Size,
		Body:        f,
	}, nil
}
