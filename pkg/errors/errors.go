// Package errors defines the AppError carried from services to the HTTP
// layer and the codes rendered in every error envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"

	// Rejections of a well formed request that the warehouse state forbids.
	CodeGeofenceViolation = "GEOFENCE_VIOLATION"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeBusinessRule      = "BUSINESS_RULE_VIOLATION"
)

// AppError pairs a stable code with the HTTP status it renders as.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail sets one detail entry and returns e for chaining.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = map[string]string{}
	}
	e.Details[key] = value
	return e
}

// WithDetails copies every entry of details onto e.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	for key, value := range details {
		e.WithDetail(key, value)
	}
	return e
}

// Wrap records the cause so errors.Is and errors.As still reach it.
func (e *AppError) Wrap(cause error) *AppError {
	e.Err = cause
	return e
}

func NewAppError(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func ErrValidation(message string) *AppError {
	return NewAppError(CodeValidationError, message, http.StatusBadRequest)
}

// ErrValidationWithFields reports one detail entry per offending field.
func ErrValidationWithFields(message string, fields map[string]string) *AppError {
	return ErrValidation(message).WithDetails(fields)
}

func ErrBadRequest(message string) *AppError {
	return NewAppError(CodeBadRequest, message, http.StatusBadRequest)
}

func ErrNotFound(resource string) *AppError {
	return NewAppError(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func ErrConflict(message string) *AppError {
	return NewAppError(CodeConflict, message, http.StatusConflict)
}

// ErrUnprocessable is the 422 used for stock and geofence rejections.
func ErrUnprocessable(code, message string) *AppError {
	return NewAppError(code, message, http.StatusUnprocessableEntity)
}

// ErrInternal hides the cause behind a generic message when none is given.
func ErrInternal(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return NewAppError(CodeInternalError, message, http.StatusInternalServerError)
}

func ErrServiceUnavailable(dependency string) *AppError {
	return NewAppError(CodeServiceUnavailable, dependency+" is temporarily unavailable", http.StatusServiceUnavailable)
}

func ErrTimeout(operation string) *AppError {
	return NewAppError(CodeTimeout, operation+" timed out", http.StatusGatewayTimeout)
}

// Mapping binds a domain sentinel to the AppError it surfaces as.
type Mapping struct {
	Target error
	Build  func(err error) *AppError
}

// MapDomainError resolves err to an AppError. An AppError anywhere in the
// chain wins, then the first Mapping whose Target matches, and finally a
// guess from the message text.
func MapDomainError(err error, mappings ...Mapping) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.Target) {
			return m.Build(err).Wrap(err)
		}
	}
	return fromMessage(err).Wrap(err)
}

func fromMessage(err error) *AppError {
	text := strings.ToLower(err.Error())
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	switch {
	case has("not found"):
		return ErrNotFound("resource")
	case has("already exists"):
		return ErrConflict(err.Error())
	case has("invalid", "required"):
		return ErrValidation(err.Error())
	case has("timeout", "deadline exceeded"):
		return ErrTimeout("operation")
	}
	return ErrInternal("")
}
