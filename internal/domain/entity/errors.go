package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateEmail indicates that an account with the email already exists
	ErrDuplicateEmail = errors.New("email already exists")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrors collects every field that failed validation, in field order.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is makes ValidationErrors match ErrValidationFailed.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Fields returns the failing field names.
func (v ValidationErrors) Fields() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Field)
	}
	return out
}

// AuthReason tells unauthenticated callers apart from authenticated ones
// that lack the permission.
type AuthReason int

const (
	// AuthMissing: no credential, or a malformed/expired/forged one.
	AuthMissing AuthReason = iota + 1
	// AuthRoleDenied: the caller's role is not in the permitted set.
	AuthRoleDenied
	// AuthNotOwner: the caller neither owns the resource nor is an admin.
	AuthNotOwner
)

// AuthError is returned by the authorization guard and by ownership checks.
type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Is compares by Reason so wrapped instances with custom messages still
// match the package sentinels.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Reason == e.Reason
}

// Authorization sentinels.
var (
	ErrNotAuthenticated = &AuthError{Reason: AuthMissing, Message: "not authorized to access this route"}
	ErrRoleNotAllowed   = &AuthError{Reason: AuthRoleDenied, Message: "role is not authorized to access this route"}
	ErrNotOwner         = &AuthError{Reason: AuthNotOwner, Message: "not authorized to modify this article"}
)

// RoleDenied returns an AuthError naming the rejected role.
func RoleDenied(r Role) *AuthError {
	return &AuthError{
		Reason:  AuthRoleDenied,
		Message: fmt.Sprintf("user role %s is not authorized to access this route", r),
	}
}

// UploadError reports a failed media store call.
// Op is "upload" or "delete"; Target is the folder or public id involved.
type UploadError struct {
	Op     string
	Target string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("media %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("media %s %q failed: %v", e.Op, e.Target, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
