package response

import (
	"time"

	"reelview-admin/internal/apperrors"
)

// Response 是一个通用的 API 响应结构
type Response[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PageResponse 分页响应结构体
type PageResponse[T any] struct {
	Page      int `json:"page"`
	Size      int `json:"size"`
	TotalPage int `json:"totalPage"`
	Total     int `json:"total"`
	List      []T `json:"list"`
}

// Now 响应时间戳（毫秒）
func Now() int64 {
	return time.Now().UnixMilli()
}

func OK[T any](data T, message string) *Response[T] {
	return &Response[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: Now(),
	}
}

func Error(message string) *Response[any] {
	return &Response[any]{
		Success:   false,
		Message:   message,
		Timestamp: Now(),
	}
}

// ErrorFromAppError 基于 AppError 构造错误响应，只暴露 Message
func ErrorFromAppError(err *apperrors.AppError) *Response[any] {
	return Error(err.Message)
}
