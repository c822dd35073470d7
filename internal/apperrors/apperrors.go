package apperrors

import (
	"errors"
	"net/http"
)

// Type 业务错误分类
type Type int

const (
	TypeValidation Type = iota
	TypeNotFound
	TypeConflict
	TypeFileType
	TypeSizeLimit
	TypeUploadFailed
	TypeInternal
)

// AppError 带分类的业务错误，在 handler 边界映射为 HTTP 状态码
type AppError struct {
	Type    Type
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建业务错误
func New(t Type, message string) *AppError {
	return &AppError{Type: t, Message: message}
}

// Wrap 包装底层错误为业务错误
func Wrap(t Type, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// As 提取业务错误，非业务错误返回 false
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ToHTTPStatus 将错误分类映射为 HTTP 状态码
func ToHTTPStatus(t Type) int {
	switch t {
	case TypeValidation, TypeConflict, TypeFileType, TypeSizeLimit:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
