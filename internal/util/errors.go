package util

import (
	"errors"
	"net/http"
)

type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "invalid_input"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindInvalidState    ErrorKind = "invalid_state"
	KindInternal        ErrorKind = "internal"
)

// AppError 业务错误，Kind 决定 HTTP 状态码，Details 原样返回给客户端
type AppError struct {
	Kind    ErrorKind
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() int {
	switch e.Kind {
	case KindInvalidInput, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func InvalidInput(message string) *AppError {
	return NewError(KindInvalidInput, message)
}

func InvalidInputWithDetails(message string, details interface{}) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message, Details: details}
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrUserNotFound       = NewError(KindNotFound, "user not found")
	ErrEmailRegistered    = NewError(KindConflict, "email already registered")
	ErrInvalidCredentials = NewError(KindUnauthenticated, "invalid credentials")
	ErrUnauthenticated    = NewError(KindUnauthenticated, "unauthorized")
	ErrPermissionDenied   = NewError(KindForbidden, "not allowed")
	ErrInvalidRole        = NewError(KindInvalidInput, "role must be one of user, admin")

	ErrSkillNotFound = NewError(KindNotFound, "skill not found")
	ErrSkillExists   = NewError(KindConflict, "skill with this name already exists")

	ErrQuizNotFound = NewError(KindNotFound, "quiz not found")

	ErrAttemptNotFound    = NewError(KindNotFound, "attempt not found")
	ErrAttemptMissingQuiz = NewError(KindInvalidState, "attempt missing quiz reference")
	ErrAttemptFinished    = NewError(KindConflict, "attempt already finished")
)
