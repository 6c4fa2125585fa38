package usecase

import (
	"errors"
	"net/http"
)

// エラーコード（レスポンスの "error"）
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL"
)

// handlerがそのままステータスとJSONにするエラー
type HTTPError struct {
	Status  int
	Code    string
	Message string
	// ログ用の元エラー（レスポンスには出さない）
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Code: CodeForStatus(status), Message: message}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

func CodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeInternal
	}
}

func validationError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func notFoundError(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// 500（詳細はErrに持たせる）
func internalError(err error) *HTTPError {
	he := NewHTTPError(http.StatusInternalServerError, "internal error")
	he.Err = err
	return he
}
