package customerror

import (
	"fmt"
	"net/http"
)

type CustomError interface {
	Error() string
	GetHTTPCode() int
}

type UniqueViolationError struct {
	httpCode int
	message  string
}

func NewUniqueViolationError(msg string) *UniqueViolationError {
	return &UniqueViolationError{httpCode: http.StatusUnprocessableEntity, message: msg}
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation: %s", e.message)
}

func (e *UniqueViolationError) GetHTTPCode() int {
	return e.httpCode
}

type CommonPGError struct {
	httpCode int
	message  string
}

func NewCommonPGError(msg string) *CommonPGError {
	return &CommonPGError{httpCode: http.StatusInternalServerError, message: msg}
}

func (e *CommonPGError) Error() string {
	return e.message
}

func (e *CommonPGError) GetHTTPCode() int {
	return e.httpCode
}

// AuthenticationError means the actor credential is missing, invalid or inactive.
type AuthenticationError struct {
	message string
}

func NewAuthenticationError(msg string) *AuthenticationError {
	return &AuthenticationError{message: msg}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.message)
}

func (e *AuthenticationError) GetHTTPCode() int {
	return http.StatusUnauthorized
}

// AuthorizationError means the actor role is not allowed to run the operation.
type AuthorizationError struct {
	message string
}

func NewAuthorizationError(msg string) *AuthorizationError {
	return &AuthorizationError{message: msg}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.message)
}

func (e *AuthorizationError) GetHTTPCode() int {
	return http.StatusForbidden
}

// ValidationError is returned for malformed input before any store access.
type ValidationError struct {
	message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{message: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.message)
}

func (e *ValidationError) GetHTTPCode() int {
	return http.StatusBadRequest
}

type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{message: msg}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.message)
}

func (e *NotFoundError) GetHTTPCode() int {
	return http.StatusNotFound
}
