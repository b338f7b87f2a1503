// Package errors provides the error taxonomy for upstream and storefront failures.
// None of these ever reach an HTTP client as a non-200 status; they travel
// inside degraded results and log lines.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamBadStatus   ErrorCode = "UPSTREAM_BAD_STATUS"
	ErrCodeUpstreamMalformed   ErrorCode = "UPSTREAM_MALFORMED"
	ErrCodeUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeUpstreamTooLarge    ErrorCode = "UPSTREAM_TOO_LARGE"

	ErrCodeWebSearchTimeout       ErrorCode = "WEB_SEARCH_TIMEOUT"
	ErrCodeWebSearchFailed        ErrorCode = "WEB_SEARCH_FAILED"
	ErrCodeWebSearchNotConfigured ErrorCode = "WEB_SEARCH_NOT_CONFIGURED"

	ErrCodeCacheBackendFailed ErrorCode = "CACHE_BACKEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error { return e.cause }

// Is matches another *StandardError by code, so sentinel-style comparisons work:
// errors.Is(err, &StandardError{Code: ErrCodeUpstreamTimeout}).
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewUpstreamUnavailableError(err error) *StandardError {
	return newError(ErrCodeUpstreamUnavailable, "Inventory service unreachable", err, true)
}

func NewUpstreamTimeoutError(err error) *StandardError {
	return newError(ErrCodeUpstreamTimeout, "Inventory service timeout", err, true)
}

func NewUpstreamBadStatusError(status int) *StandardError {
	e := newError(ErrCodeUpstreamBadStatus, "Inventory service returned an error status", nil, status >= 500)
	e.Details = fmt.Sprintf("status: %d", status)
	e.Metadata = map[string]interface{}{"status": status}
	return e
}

func NewUpstreamMalformedError(err error) *StandardError {
	return newError(ErrCodeUpstreamMalformed, "Inventory response could not be parsed", err, false)
}

func NewUpstreamTooLargeError(limit int64) *StandardError {
	e := newError(ErrCodeUpstreamTooLarge, "Inventory response exceeds size limit", nil, false)
	e.Details = fmt.Sprintf("limit: %d bytes", limit)
	e.Metadata = map[string]interface{}{"limitBytes": limit}
	return e
}

func NewWebSearchTimeoutError(err error) *StandardError {
	return newError(ErrCodeWebSearchTimeout, "Storefront search timeout", err, false)
}

func NewWebSearchFailedError(err error) *StandardError {
	return newError(ErrCodeWebSearchFailed, "Storefront search failed", err, false)
}

func NewWebSearchNotConfiguredError() *StandardError {
	return newError(ErrCodeWebSearchNotConfigured, "Storefront search is not configured", nil, false)
}

func NewCacheBackendError(op string, err error) *StandardError {
	e := newError(ErrCodeCacheBackendFailed, fmt.Sprintf("Cache backend %s failed", op), err, true)
	e.Metadata = map[string]interface{}{"operation": op}
	return e
}

// CodeOf returns the code of the first StandardError in err's chain, or "" when there is none.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsRetryable reports whether err carries a retryable StandardError.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "UPSTREAM"):
		return "INVENTORY"
	case strings.HasPrefix(codeStr, "WEB_SEARCH"):
		return "SEARCH"
	case strings.HasPrefix(codeStr, "CACHE"):
		return "CACHE"
	default:
		return "OTHER"
	}
}
