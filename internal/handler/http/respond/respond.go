// Package respond writes the JSON envelope shared by every API endpoint and
// maps domain errors to HTTP status codes.
//
//	{"success":true,"data":{...}}
//	{"success":false,"error":"article not found"}
//	{"success":false,"errors":[{"field":"title","message":"title is required"}]}
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"news-portal/internal/domain/entity"
)

// Envelope is the success body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// ErrorBody is the failure body. Exactly one of Error and Errors is set.
type ErrorBody struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError reports one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MediaFailureMessage is returned instead of provider details.
const MediaFailureMessage = "media storage failure"

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダ送信済みのためログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// OK writes {"success":true,"data":data}.
func OK(w http.ResponseWriter, code int, data any) {
	JSON(w, code, Envelope{Success: true, Data: data})
}

// Message writes a success envelope with a message.
func Message(w http.ResponseWriter, code int, msg string, data any) {
	JSON(w, code, Envelope{Success: true, Message: msg, Data: data})
}

// Error writes err's message as is. Use it only for messages written for users.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// Validation writes the field errors with status 400.
func Validation(w http.ResponseWriter, verrs entity.ValidationErrors) {
	body := ErrorBody{Errors: make([]FieldError, 0, len(verrs))}
	for _, v := range verrs {
		body.Errors = append(body.Errors, FieldError{Field: v.Field, Message: v.Message})
	}
	JSON(w, http.StatusBadRequest, body)
}

// SafeError returns err's message only when it reads like a user-facing
// validation message and code is below 500. Anything else is logged with
// secrets masked and replaced by "internal server error".
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()

	// ユーザーに返してOKなエラー
	safeErrors := []string{
		"required",
		"invalid",
		"not found",
		"already exists",
		"must be",
		"cannot be",
		"not authorized",
		"too large",
	}

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 500系は常に内部エラー扱い
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}

// StatusFor maps a domain error to its HTTP status.
//
//	ValidationError(s), ErrInvalidInput, ErrDuplicateEmail -> 400
//	AuthError: missing credential or not the owner -> 401, wrong role -> 403
//	ErrNotFound -> 404
//	UploadError -> 502
//	anything else -> 500
func StatusFor(err error) int {
	var (
		authErr   *entity.AuthError
		uploadErr *entity.UploadError
	)
	switch {
	case errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		if authErr.Reason == entity.AuthRoleDenied {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the response for err according to StatusFor.
func FromError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var (
		verrs    entity.ValidationErrors
		verr     *entity.ValidationError
		authErr  *entity.AuthError
		notFound = errors.Is(err, entity.ErrNotFound)
	)
	code := StatusFor(err)

	switch {
	case errors.As(err, &verrs):
		Validation(w, verrs)
	case errors.As(err, &verr):
		Validation(w, entity.ValidationErrors{verr})
	case errors.As(err, &authErr):
		JSON(w, code, ErrorBody{Error: authErr.Message})
	case code == http.StatusBadRequest, notFound:
		JSON(w, code, ErrorBody{Error: rootMessage(err)})
	case code == http.StatusBadGateway:
		slog.Default().Error("media store failure", slog.String("error", SanitizeError(err)))
		JSON(w, code, ErrorBody{Error: MediaFailureMessage})
	default:
		SafeError(w, code, err)
	}
}

// rootMessage drops the "op: " prefixes added while wrapping.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
