package http

import (
	"errors"

	"historia/internal/pkg/jsonrepair"
	"historia/internal/pkg/pipeerr"
)

// 错误码约定：4xxxx 为调用方错误，5xxxx 为服务端/上游错误
const (
	CodeInvalidRequest = 40001 // 请求参数错误
	CodeValidation     = 40002 // 业务输入校验失败
	CodeNotFound       = 40401 // 资源不存在
	CodeInternal       = 50001 // 服务内部错误
	CodeProvider       = 50002 // 上游服务调用失败
	CodeParse          = 50003 // 模型输出解析失败
)

// ErrorResponse 错误响应（所有API共用）
// 用于统一错误响应格式
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
// 用于统一成功响应格式
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// FromError 按错误分类映射为 HTTP 状态码和错误响应
// 校验错误 -> 400，上游/解析错误 -> 502，其余 -> 500
func FromError(err error) (int, *ErrorResponse) {
	var parseErr *jsonrepair.ParseError
	switch {
	case pipeerr.IsValidation(err):
		return 400, NewErrorResponse(CodeValidation, err.Error())
	case errors.As(err, &parseErr):
		return 502, NewErrorResponse(CodeParse, err.Error(), parseErr.Excerpt)
	case pipeerr.IsProvider(err):
		return 502, NewErrorResponse(CodeProvider, err.Error())
	default:
		return 500, NewErrorResponse(CodeInternal, err.Error())
	}
}
