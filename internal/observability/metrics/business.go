package metrics

import (
	"errors"
	"time"

	"news-portal/internal/domain/entity"
)

// Status labels used by RecordArticleOperation.
const (
	StatusSuccess    = "success"
	StatusInvalid    = "invalid"
	StatusNotFound   = "not_found"
	StatusForbidden  = "forbidden"
	StatusMediaError = "media_error"
	StatusError      = "error"
)

// StatusOf classifies err for metric labels.
func StatusOf(err error) string {
	var (
		authErr   *entity.AuthError
		uploadErr *entity.UploadError
	)
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return StatusInvalid
	case errors.Is(err, entity.ErrNotFound):
		return StatusNotFound
	case errors.As(err, &authErr):
		return StatusForbidden
	case errors.As(err, &uploadErr):
		return StatusMediaError
	default:
		return StatusError
	}
}

// RecordArticleOperation records one article operation ("create", "update",
// "delete", "list", "get", "upload") and its outcome.
func RecordArticleOperation(op string, err error, duration time.Duration) {
	ArticleOperationsTotal.WithLabelValues(op, StatusOf(err)).Inc()
	ArticleOperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// UpdateArticlesTotal sets the stored article count.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RecordMediaReplaced counts an asset superseded by an update.
func RecordMediaReplaced(slot entity.MediaSlot) {
	MediaSlotsReplacedTotal.WithLabelValues(string(slot)).Inc()
}

// RecordAuthAttempt records a register or login attempt.
func RecordAuthAttempt(action string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}
