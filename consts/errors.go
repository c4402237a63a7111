package consts

import (
	"errors"
	"fmt"
)

// BizError 业务错误
// 约定：Service 层返回 BizError 携带业务错误码，Handler 层通过
// ExtractErrorCode 提取后交给 result 包映射 HTTP 状态码与 reason。
type BizError struct {
	Code int32
	Err  error
}

func (e *BizError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("biz error %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("biz error %d: %s", e.Code, GetMessage(e.Code))
}

func (e *BizError) Unwrap() error {
	return e.Err
}

// NewBizError 创建业务错误
func NewBizError(code int32) *BizError {
	return &BizError{Code: code}
}

// WrapBizError 包装底层错误为业务错误（保留原始错误用于日志）
func WrapBizError(code int32, err error) *BizError {
	return &BizError{Code: code, Err: err}
}

// ExtractErrorCode 提取业务错误码
// 非 BizError 一律视为服务器内部错误
func ExtractErrorCode(err error) int32 {
	if err == nil {
		return CodeSuccess
	}
	var bizErr *BizError
	if errors.As(err, &bizErr) {
		return bizErr.Code
	}
	return CodeInternalError
}
