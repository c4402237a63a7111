package result

import (
	"MatchServer/consts"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构体。
// Error 为机器可读错误标识（如 blocked/incognito/rate_limit），
// 客户端按 Error 分支，Message 只用于展示。
type Response struct {
	Code    int32       `json:"code"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	TraceId string      `json:"trace_id"`
}

// Result 返回响应，HTTP 状态码由业务错误码映射而来。
func Result(c *gin.Context, data interface{}, message string, code int32) {
	traceId := c.GetString("trace_id")
	if message == "" {
		message = consts.GetMessage(code)
	}

	resp := Response{
		Code:    code,
		Message: message,
		Data:    data,
		TraceId: traceId,
	}
	if code != consts.CodeSuccess {
		resp.Error = consts.GetReason(code)
	}

	c.JSON(consts.GetHTTPStatus(code), resp)
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	Result(c, data, "", consts.CodeSuccess)
}

// Fail 返回失败响应
func Fail(c *gin.Context, data interface{}, code int32) {
	Result(c, data, "", code)
}

// FailWithMessage 返回失败响应并自定义消息
func FailWithMessage(c *gin.Context, data interface{}, message string, code int32) {
	Result(c, data, message, code)
}

// FailFromError 从 error 中提取业务错误码并返回失败响应。
// 非 BizError 一律按内部错误处理。
func FailFromError(c *gin.Context, err error) {
	Fail(c, nil, consts.ExtractErrorCode(err))
}

// Abort 以指定业务错误码终止请求（中间件使用）。
func Abort(c *gin.Context, code int32) {
	Result(c, nil, "", code)
	c.Abort()
}
