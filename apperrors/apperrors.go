// Package apperrors defines the error codes shared by services and HTTP
// handlers and the mapping from those codes to HTTP responses.
package apperrors

import (
	"log/slog"
	"net/http"

	"github.com/samber/oops"
)

// Error codes carried by oops errors.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeAuthFailure     = "AUTH_FAILURE"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeTokenMalformed  = "TOKEN_MALFORMED"
	CodeTokenRevoked    = "TOKEN_REVOKED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL"
)

const internalMessage = "Internal server error"

var statusByCode = map[string]int{
	CodeInvalidInput:    http.StatusBadRequest,
	CodeAuthFailure:     http.StatusUnauthorized,
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeTokenExpired:    http.StatusUnauthorized,
	CodeTokenMalformed:  http.StatusUnauthorized,
	CodeTokenRevoked:    http.StatusUnauthorized,
	CodeForbidden:       http.StatusForbidden,
	CodeNotFound:        http.StatusNotFound,
	CodeConflict:        http.StatusConflict,
	CodeInternal:        http.StatusInternalServerError,
}

func InvalidInput(format string, args ...any) error {
	return oops.Code(CodeInvalidInput).Errorf(format, args...)
}

// AuthFailure is returned for every credential mismatch. The reason is kept
// in the error context for logs and never reaches the client.
func AuthFailure(reason string) error {
	return oops.Code(CodeAuthFailure).With("reason", reason).Errorf("Invalid email or password")
}

func Unauthenticated(format string, args ...any) error {
	return oops.Code(CodeUnauthenticated).Errorf(format, args...)
}

func Forbidden(format string, args ...any) error {
	return oops.Code(CodeForbidden).Errorf(format, args...)
}

func NotFound(format string, args ...any) error {
	return oops.Code(CodeNotFound).Errorf(format, args...)
}

func Conflict(format string, args ...any) error {
	return oops.Code(CodeConflict).Errorf(format, args...)
}

// Internal wraps an unexpected failure. Errors that already carry a code are
// returned unchanged.
func Internal(err error, msg string) error {
	if err == nil {
		return nil
	}
	if Code(err) != "" {
		return err
	}
	return oops.Code(CodeInternal).Wrapf(err, "%s", msg)
}

// Code returns the oops code attached to err, or "" when there is none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := any(oopsErr.Code()).(string)
	return code
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return Code(err) == code
}

// HTTPStatus maps err to a response status. Uncoded errors are internal.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[Code(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text safe to put in a response body.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return internalMessage
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		return oopsErr.Error()
	}
	return err.Error()
}

// Log logs an error with structured context if it's an oops error.
func Log(logger *slog.Logger, msg string, err error) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.Error(msg, "error", err)
		return
	}

	attrs := []any{"error", oopsErr.Error()}
	if code := Code(err); code != "" {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	logger.Error(msg, attrs...)
}
