// Package errs 提供统一的业务错误分类（校验/未授权/冲突/不存在/存储），并负责到 HTTP 状态码的映射
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误代码
const (
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeStore        = "STORE"
)

// Error 业务错误，携带分类代码、用户可见消息与底层原因
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 暴露底层原因，支持 errors.Is / errors.As
func (e *Error) Unwrap() error { return e.Cause }

// Validation 创建校验错误
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// Unauthorized 创建未授权错误
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// Conflict 创建唯一键冲突错误
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NotFound 创建资源不存在错误
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Store 包装底层持久化失败
func Store(cause error) *Error {
	return &Error{Code: CodeStore, Message: "store operation failed", Cause: cause}
}

// CodeOf 返回错误的分类代码，非业务错误一律视为存储错误
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStore
}

// MessageOf 返回用户可见的单行消息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Is 判断错误是否属于指定分类
func Is(err error, code string) bool {
	return CodeOf(err) == code
}

// HTTPStatus 业务错误到 HTTP 状态码的映射
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
