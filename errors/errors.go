package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category surfaced to API clients.
type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindRateLimitExceeded   Kind = "rate_limit_exceeded"
	KindNoCaptionsAvailable Kind = "no_captions_available"
	KindFetchError          Kind = "fetch_error"
	KindSummarizationFailed Kind = "summarization_failed"
	KindInternal            Kind = "internal"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"kind"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func E(op string, err error, message string, code int, kind Kind) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadRequest, KindInvalidInput)
}

func NotFound(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusNotFound, KindNotFound)
}

func RateLimitExceeded(op string) *AppError {
	return E(op, nil, "Rate limit exceeded", http.StatusTooManyRequests, KindRateLimitExceeded)
}

// NoCaptions reports a video URL whose caption tracks are missing or empty.
func NoCaptions(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusUnprocessableEntity, KindNoCaptionsAvailable)
}

// FetchFailed reports an unreachable page or non-text content.
func FetchFailed(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadGateway, KindFetchError)
}

// SummarizationFailed reports an exhausted retry budget against the model API.
func SummarizationFailed(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadGateway, KindSummarizationFailed)
}

func Internal(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusInternalServerError, KindInternal)
}

func kindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsInvalidInput(err error) bool        { return kindOf(err) == KindInvalidInput }
func IsNotFound(err error) bool            { return kindOf(err) == KindNotFound }
func IsNoCaptions(err error) bool          { return kindOf(err) == KindNoCaptionsAvailable }
func IsFetchError(err error) bool          { return kindOf(err) == KindFetchError }
func IsSummarizationFailed(err error) bool { return kindOf(err) == KindSummarizationFailed }
