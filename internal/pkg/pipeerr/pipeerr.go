// Package pipeerr 定义流水线的错误分类
//
// 三类错误对应不同的补救方式：
//   - ValidationError: 调用方输入不满足前置条件，修正输入后重试
//   - ProviderError: 上游 API 返回失败，稍后重试
//   - ParseError: 模型输出无法解析（修复后仍失败），需要上报排查
package pipeerr

import (
	"errors"
	"fmt"
)

// ValidationError 输入校验失败，未发起任何网络调用
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation 创建输入校验错误
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ProviderError 上游服务调用失败
type ProviderError struct {
	Provider string // 上游服务名（text/research/image）
	Status   int    // HTTP 状态码（若适用，0 表示非 HTTP 错误）
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s provider error (status %d): %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProvider 创建上游服务错误
func NewProvider(provider string, status int, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Status: status, Message: message, Err: err}
}

// IsValidation 判断是否为输入校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsProvider 判断是否为上游服务错误
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
