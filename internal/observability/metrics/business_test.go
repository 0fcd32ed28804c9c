package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"news-portal/internal/domain/entity"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, StatusSuccess},
		{entity.ValidationErrors{{Field: "title", Message: "title is required"}}, StatusInvalid},
		{fmt.Errorf("get: %w", entity.ErrNotFound), StatusNotFound},
		{entity.ErrNotOwner, StatusForbidden},
		{&entity.UploadError{Op: "upload", Err: errors.New("x")}, StatusMediaError},
		{errors.New("db down"), StatusError},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordArticleOperation(t *testing.T) {
	before := testutil.ToFloat64(ArticleOperationsTotal.WithLabelValues("create", StatusSuccess))

	RecordArticleOperation("create", nil, 10*time.Millisecond)

	after := testutil.ToFloat64(ArticleOperationsTotal.WithLabelValues("create", StatusSuccess))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestUpdateArticlesTotal(t *testing.T) {
	UpdateArticlesTotal(42)
	if got := testutil.ToFloat64(ArticlesTotal); got != 42 {
		t.Errorf("articles_total = %v, want 42", got)
	}
}

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", "failure"))
	RecordAuthAttempt("login", false)
	if got := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", "failure")); got != before+1 {
		t.Errorf("auth_attempts_total = %v, want %v", got, before+1)
	}
}

func TestRecordMediaReplaced(t *testing.T) {
	before := testutil.ToFloat64(MediaSlotsReplacedTotal.WithLabelValues("image"))
	RecordMediaReplaced(entity.SlotImage)
	if got := testutil.ToFloat64(MediaSlotsReplacedTotal.WithLabelValues("image")); got != before+1 {
		t.Errorf("replaced = %v, want %v", got, before+1)
	}
}
