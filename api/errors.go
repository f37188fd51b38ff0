package api

import (
	"context"
	"net/http"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// ErrorCode represents an API error code.
type ErrorCode string

// Error codes for API responses.
const (
	CodeInvalidInput     ErrorCode = "invalid_input"
	CodeUnknownValidator ErrorCode = "unknown_validator"
	CodeFormatError      ErrorCode = "format_error"
	CodeDAGCycle         ErrorCode = "dag_cycle"
	CodeDAGInvalid       ErrorCode = "dag_invalid"
	CodeReportNotFound   ErrorCode = "report_not_found"
	CodeCancelled        ErrorCode = "cancelled"
	CodeInternalError    ErrorCode = "internal_error"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Code       ErrorCode
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MapError maps a domain error to an HTTPError.
func MapError(err error) *HTTPError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, contracts.ErrInvalidInput):
		return &HTTPError{http.StatusBadRequest, CodeInvalidInput, err}

	case errors.Is(err, contracts.ErrUnknownValidator):
		return &HTTPError{http.StatusBadRequest, CodeUnknownValidator, err}

	case errors.Is(err, contracts.ErrFormat):
		return &HTTPError{http.StatusUnprocessableEntity, CodeFormatError, err}

	case errors.Is(err, contracts.ErrDAGCycle):
		return &HTTPError{http.StatusUnprocessableEntity, CodeDAGCycle, err}

	case errors.Is(err, contracts.ErrDAGInvalid),
		errors.Is(err, contracts.ErrUnknownTask):
		return &HTTPError{http.StatusUnprocessableEntity, CodeDAGInvalid, err}

	case errors.Is(err, contracts.ErrReportNotFound):
		return &HTTPError{http.StatusNotFound, CodeReportNotFound, err}

	case errors.Is(err, context.Canceled):
		// 499: nginx convention for "client closed request"
		return &HTTPError{499, CodeCancelled, err}

	default:
		return &HTTPError{http.StatusInternalServerError, CodeInternalError, err}
	}
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, err error) {
	httpErr := MapError(err)
	if httpErr == nil {
		return
	}

	resp := ErrorDTO{
		Code:    string(httpErr.Code),
		Message: httpErr.Error(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)
	writeJSON(w, resp)
}
