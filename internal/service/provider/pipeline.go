package provider

import (
	"context"
	"fmt"
	"strconv"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
)

// Decision 由哪个映射阶段决定 SUCCESS
type Decision int

const (
	// DecideBoth 传输状态和业务状态都成功才算成功
	DecideBoth Decision = iota
	// DecideTransport 只看传输状态，供应商没有业务状态字段时使用
	DecideTransport
	// DecideBusiness 只看业务状态，供应商业务失败也返回 200 以外状态码时使用
	DecideBusiness
)

const subCodeTransportError = "TRANSPORT_ERROR"

// Result 从供应商响应中解析出的业务状态
type Result struct {
	Status string
	Msg    string
	Data   any
}

type (
	// BuildFunc 把请求实体映射成供应商的线上格式
	BuildFunc func(cc domain.ChannelContext, req domain.Request) (transport.Request, error)
	// SignFunc 附加凭证，给定相同输入必须得到相同输出
	SignFunc func(cc domain.ChannelContext, req transport.Request) (transport.Request, error)
	// ParseFunc 从响应中解析业务状态
	ParseFunc func(resp transport.Response) (Result, error)
)

// Pipeline 一个供应商操作的完整流程：
// 校验 -> 构造 -> 签名 -> 调用 -> 解析 -> 归一化
type Pipeline struct {
	Required []string                   // Request 中的必填字段
	Check    func(domain.Request) error // 额外校验，例如手机号格式
	Build    BuildFunc
	Sign     SignFunc
	Parse    ParseFunc

	// TransportTable 为空时 2xx 视为成功
	TransportTable domain.StatusTable
	BusinessTable  domain.StatusTable
	Decide         Decision
}

// Execute 执行流程，任何失败都被归一化为 FAILURE，不会向调用方返回 error
func (p Pipeline) Execute(ctx context.Context, tr transport.Client, cc domain.ChannelContext, req domain.Request) domain.Message {
	req, err := p.Validate(cc, req)
	if err != nil {
		return domain.NewFailure("", err.Error())
	}

	wire, err := p.Build(cc, req)
	if err != nil {
		return domain.NewFailure("", fmt.Sprintf("构造请求失败: %s", err.Error()))
	}
	if p.Sign != nil {
		wire, err = p.Sign(cc, wire.Clone())
		if err != nil {
			return domain.NewFailure("", fmt.Sprintf("签名失败: %s", err.Error()))
		}
	}

	resp, err := tr.Invoke(ctx, wire)
	if err != nil {
		return domain.NewFailure(subCodeTransportError, err.Error())
	}
	return p.normalize(resp)
}

// Validate 补全默认值后校验请求，返回补全后的请求
func (p Pipeline) Validate(cc domain.ChannelContext, req domain.Request) (domain.Request, error) {
	req = req.WithDefaults(cc)
	if err := req.Validate(p.Required...); err != nil {
		return req, err
	}
	if p.Check != nil {
		if err := p.Check(req); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (p Pipeline) normalize(resp transport.Response) domain.Message {
	httpStatus := strconv.Itoa(resp.StatusCode)
	transportCode := p.transportCode(resp.StatusCode)
	if p.Decide == DecideTransport || p.Parse == nil {
		return domain.NewMessage(transportCode, httpStatus, "HTTP "+httpStatus, string(resp.Body))
	}

	res, err := p.Parse(resp)
	if err != nil {
		return domain.NewFailure(httpStatus, fmt.Sprintf("%s: HTTP %s: %s", errs.ErrMalformedResponse.Error(), httpStatus, err.Error()))
	}

	code := p.BusinessTable.Lookup(res.Status)
	if p.Decide == DecideBoth && transportCode != domain.CodeSuccess {
		code = domain.CodeFailure
	}
	msg := res.Msg
	if msg == "" {
		msg = "HTTP " + httpStatus
	}
	return domain.NewMessage(code, res.Status, msg, res.Data)
}

func (p Pipeline) transportCode(statusCode int) domain.Code {
	if p.TransportTable.Len() > 0 {
		return p.TransportTable.Lookup(strconv.Itoa(statusCode))
	}
	if statusCode >= 200 && statusCode < 300 {
		return domain.CodeSuccess
	}
	return domain.CodeFailure
}

// Normalize 供 SDK 类供应商使用：SDK 已经完成了传输，只剩业务状态映射
func Normalize(table domain.StatusTable, status, msg string, data any) domain.Message {
	return domain.NewMessage(table.Lookup(status), status, msg, data)
}

// Failure SDK 调用失败时使用，保留原始错误信息
func Failure(err error) domain.Message {
	return domain.NewFailure(subCodeTransportError, err.Error())
}
