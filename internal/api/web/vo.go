package web

import (
	"gitee.com/flycash/vendor-dispatch/internal/domain"
)

// DispatchReq 请求实体的字段直接平铺在 body 中，override 为可选的单次覆盖项
type DispatchReq struct {
	domain.Request
	Override *domain.Override `json:"override,omitempty"`
}

func (r DispatchReq) overrides() []domain.Override {
	if r.Override == nil || r.Override.IsZero() {
		return nil
	}
	return []domain.Override{*r.Override}
}

type ErrorResp struct {
	Msg string `json:"msg"`
}
