package consts

import "net/http"

// 通用错误码
const (
	CodeSuccess int32 = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	CodeParamError       int32 = 10001 // 参数验证失败
	CodeBodyError        int32 = 10002 // 请求体格式错误
	CodeResourceNotFound int32 = 10003 // 资源不存在
	CodeMethodNotAllowed int32 = 10004 // 请求方法不允许
	CodeTooManyRequests  int32 = 10005 // 请求过于频繁
	CodeBodyTooLarge     int32 = 10006 // 请求体过大
	CodeTimeoutError     int32 = 10007 // 请求处理超时
)

// 账号角色，来自身份凭证的 role 声明
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
)

// 认证错误 (2xxxx)
const (
	CodeUnauthorized   int32 = 20001 // 未认证
	CodeInvalidToken   int32 = 20002 // Token 无效
	CodeTokenExpired   int32 = 20003 // Token 已过期
	CodePermissionDeny int32 = 20004 // 权限不足
)

// 用户/资料模块错误 (11xxx)
const (
	CodeUserNotFound     int32 = 11001 // 用户不存在
	CodeProfileNotFound  int32 = 11002 // 用户资料不存在
	CodeSettingsNotFound int32 = 11003 // 隐私设置不存在
	CodeUserDisabled     int32 = 11004 // 用户已被封禁
)

// 互动模块错误 (12xxx)
const (
	CodeBlocked            int32 = 12001 // 双方存在拉黑关系
	CodeIncognito          int32 = 12002 // 发起方处于隐身模式
	CodePeerHidden         int32 = 12003 // 对方资料不可见
	CodeLikeAlreadyExists  int32 = 12004 // 已经喜欢过该用户
	CodeBlockAlreadyExists int32 = 12005 // 已经拉黑该用户
	CodeReportPending      int32 = 12006 // 已存在待处理的举报
)

// 消息模块错误 (13xxx)
const (
	CodeMessageNotFound       int32 = 13001 // 消息不存在
	CodeMessageSendFail       int32 = 13002 // 消息发送失败
	CodeMessageTypeNotSupport int32 = 13003 // 消息类型不支持
	CodeContentTooLarge       int32 = 13004 // 消息内容超长
)

// 服务端错误 (3xxxx)
const (
	CodeInternalError      int32 = 30001 // 服务器内部错误
	CodeServiceUnavailable int32 = 30002 // 服务暂不可用
)

// 错误消息映射
var CodeMessage = map[int32]string{
	CodeSuccess: "success",

	// 客户端错误
	CodeParamError:       "参数验证失败",
	CodeBodyError:        "请求体格式错误",
	CodeResourceNotFound: "资源不存在",
	CodeMethodNotAllowed: "请求方法不允许",
	CodeTooManyRequests:  "请求过于频繁",
	CodeBodyTooLarge:     "请求体过大",
	CodeTimeoutError:     "请求处理超时",

	// 认证错误
	CodeUnauthorized:   "未认证",
	CodeInvalidToken:   "Token 无效",
	CodeTokenExpired:   "Token 已过期",
	CodePermissionDeny: "权限不足",

	// 用户/资料模块
	CodeUserNotFound:     "用户不存在",
	CodeProfileNotFound:  "用户资料不存在",
	CodeSettingsNotFound: "隐私设置不存在",
	CodeUserDisabled:     "用户已被封禁",

	// 互动模块
	CodeBlocked:            "双方存在拉黑关系",
	CodeIncognito:          "发起方处于隐身模式",
	CodePeerHidden:         "对方资料不可见",
	CodeLikeAlreadyExists:  "已经喜欢过该用户",
	CodeBlockAlreadyExists: "已经拉黑该用户",
	CodeReportPending:      "已存在待处理的举报",

	// 消息模块
	CodeMessageNotFound:       "消息不存在",
	CodeMessageSendFail:       "消息发送失败",
	CodeMessageTypeNotSupport: "消息类型不支持",
	CodeContentTooLarge:       "消息内容超长",

	// 服务端错误
	CodeInternalError:      "服务器内部错误",
	CodeServiceUnavailable: "服务暂不可用",
}

// CodeReason 机器可读错误标识映射
// 客户端依赖该字段做重试与提示分支，值一旦发布不可变更
var CodeReason = map[int32]string{
	CodeParamError:       "invalid_param",
	CodeBodyError:        "invalid_body",
	CodeResourceNotFound: "not_found",
	CodeMethodNotAllowed: "method_not_allowed",
	CodeTooManyRequests:  "rate_limit",
	CodeBodyTooLarge:     "payload_too_large",
	CodeTimeoutError:     "timeout",

	CodeUnauthorized:   "unauthorized",
	CodeInvalidToken:   "unauthorized",
	CodeTokenExpired:   "unauthorized",
	CodePermissionDeny: "unauthorized",

	CodeUserNotFound:     "not_found",
	CodeProfileNotFound:  "not_found",
	CodeSettingsNotFound: "not_found",
	CodeUserDisabled:     "unauthorized",

	CodeBlocked:            "blocked",
	CodeIncognito:          "incognito",
	CodePeerHidden:         "peer_hidden",
	CodeLikeAlreadyExists:  "conflict",
	CodeBlockAlreadyExists: "conflict",
	CodeReportPending:      "conflict",

	CodeMessageNotFound:       "not_found",
	CodeMessageSendFail:       "internal",
	CodeMessageTypeNotSupport: "invalid_param",
	CodeContentTooLarge:       "payload_too_large",

	CodeInternalError:      "internal",
	CodeServiceUnavailable: "unavailable",
}

// CodeHTTPStatus 业务错误码到 HTTP 状态码的映射
// 未出现在表中的错误码按 500 处理
var CodeHTTPStatus = map[int32]int{
	CodeSuccess: http.StatusOK,

	CodeParamError:       http.StatusBadRequest,
	CodeBodyError:        http.StatusBadRequest,
	CodeResourceNotFound: http.StatusNotFound,
	CodeMethodNotAllowed: http.StatusMethodNotAllowed,
	CodeTooManyRequests:  http.StatusTooManyRequests,
	CodeBodyTooLarge:     http.StatusRequestEntityTooLarge,
	CodeTimeoutError:     http.StatusInternalServerError,

	CodeUnauthorized:   http.StatusUnauthorized,
	CodeInvalidToken:   http.StatusUnauthorized,
	CodeTokenExpired:   http.StatusUnauthorized,
	CodePermissionDeny: http.StatusForbidden,

	CodeUserNotFound:     http.StatusNotFound,
	CodeProfileNotFound:  http.StatusNotFound,
	CodeSettingsNotFound: http.StatusNotFound,
	CodeUserDisabled:     http.StatusForbidden,

	CodeBlocked:            http.StatusForbidden,
	CodeIncognito:          http.StatusForbidden,
	CodePeerHidden:         http.StatusForbidden,
	CodeLikeAlreadyExists:  http.StatusConflict,
	CodeBlockAlreadyExists: http.StatusConflict,
	CodeReportPending:      http.StatusConflict,

	CodeMessageNotFound:       http.StatusNotFound,
	CodeMessageSendFail:       http.StatusInternalServerError,
	CodeMessageTypeNotSupport: http.StatusBadRequest,
	CodeContentTooLarge:       http.StatusRequestEntityTooLarge,

	CodeInternalError:      http.StatusInternalServerError,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int32) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetReason 根据错误码获取机器可读错误标识
func GetReason(code int32) string {
	if reason, ok := CodeReason[code]; ok {
		return reason
	}
	return "internal"
}

// GetHTTPStatus 根据错误码获取 HTTP 状态码
func GetHTTPStatus(code int32) int {
	if status, ok := CodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsNonServerError 判断是否为非服务端错误（业务可预期错误）
// 用于 Handler 层决定是否记录错误日志
func IsNonServerError(code int32) bool {
	return code != CodeSuccess && code < CodeInternalError
}
