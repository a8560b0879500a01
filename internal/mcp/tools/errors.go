package tools

import (
	"fmt"

	"github.com/usestring/mcp-starter/internal/lookup"
)

// Error codes for MCP tool and resource responses.
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUpstreamError = "UPSTREAM_ERROR"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeTimeout       = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// LookupError converts a failed lookup.Result into a coded error for
// surfaces that report failures as Go errors, such as resource reads.
// Returns nil for successful results.
func LookupError(res lookup.Result) error {
	if !res.IsError {
		return nil
	}
	return &CodedError{Code: codeForKind(res.Kind), Message: res.Text}
}

func codeForKind(k lookup.Kind) string {
	switch k {
	case lookup.KindNotFound:
		return ErrCodeNotFound
	case lookup.KindRateLimited:
		return ErrCodeRateLimited
	case lookup.KindCanceled:
		return ErrCodeTimeout
	default:
		return ErrCodeUpstreamError
	}
}
