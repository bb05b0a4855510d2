package utils

import (
	"errors"
)

// ErrorCode classifies every error surfaced to API clients.
type ErrorCode string

const (
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeBadUserInput    ErrorCode = "BAD_USER_INPUT"
	CodeInternal        ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is a classified, client-safe error. Err keeps the cause for logs only.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Extensions is picked up by graphql-go when building the response error.
func (e *AppError) Extensions() map[string]any {
	return map[string]any{"code": string(e.Code)}
}

func Unauthenticated(msg string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: msg}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Message: msg}
}

func BadUserInput(msg string) *AppError {
	return &AppError{Code: CodeBadUserInput, Message: msg}
}

func Internal(msg string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: msg, Err: cause}
}

// Classify passes AppErrors through and collapses anything else into an
// internal error carrying msg.
func Classify(err error, msg string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(msg, err)
}

// CodeOf returns the classification of err, INTERNAL_SERVER_ERROR when unclassified.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
