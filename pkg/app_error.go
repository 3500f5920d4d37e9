package pkg

import (
	"errors"
	"net/http"

	"evdealer/internal/domain/errs"
)

// AppError is the error shape handlers render at the HTTP boundary.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int
}

// HTTPError is the JSON body of an error response.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return NewDomainError(code, message, nil, status)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}

// FromError maps a domain error to its HTTP rendition by kind. Validation,
// not-found and policy messages are safe to show; transport and unknown
// failures get a generic message.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errs.KindNotFound:
		return NewDomainError("NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errs.KindPolicy:
		return NewDomainError("POLICY_VIOLATION", err.Error(), err, http.StatusConflict)
	case errs.KindTransport:
		return NewDomainError("SERVICE_UNAVAILABLE", "A dependent service is unavailable", err, http.StatusServiceUnavailable)
	default:
		return NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
