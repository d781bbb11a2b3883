package provider

import (
	"context"
	"slices"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
)

// Provider 供应商接口
// 每个操作都只返回归一化的 domain.Message，校验失败、传输失败、业务失败都体现在 Message.Code 上。
// 实现必须是无状态的，或者只持有不可变的共享状态。
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks Provider
type Provider interface {
	// Name 供应商名称
	Name() string
	// Send 发送消息
	Send(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message
	// Query 查询发送回执或订单状态
	Query(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message
	// Refund 退款
	Refund(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message
	// Close 关闭订单
	Close(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message
}

// Operations 供应商声明自己实现了哪些操作，未声明的操作一定返回 UNSUPPORTED
type Operations interface {
	Operations() []domain.Operation
}

var allOperations = []domain.Operation{
	domain.OperationSend, domain.OperationQuery, domain.OperationRefund, domain.OperationClose,
}

// OperationsOf 没有声明时视为实现了全部操作
func OperationsOf(p Provider) []domain.Operation {
	if o, ok := p.(Operations); ok {
		return o.Operations()
	}
	return slices.Clone(allOperations)
}

// Supports 判断 op 是否会真正到达供应商
func Supports(p Provider, op domain.Operation) bool {
	return op.IsValid() && slices.Contains(OperationsOf(p), op)
}

// Unimplemented 嵌入后未实现的操作统一返回 UNSUPPORTED，不会调用供应商
type Unimplemented struct{}

func (Unimplemented) Send(_ context.Context, cc domain.ChannelContext, _ domain.Request) domain.Message {
	return domain.NewUnsupported(cc.Vendor, domain.OperationSend)
}

func (Unimplemented) Query(_ context.Context, cc domain.ChannelContext, _ domain.Request) domain.Message {
	return domain.NewUnsupported(cc.Vendor, domain.OperationQuery)
}

func (Unimplemented) Refund(_ context.Context, cc domain.ChannelContext, _ domain.Request) domain.Message {
	return domain.NewUnsupported(cc.Vendor, domain.OperationRefund)
}

func (Unimplemented) Close(_ context.Context, cc domain.ChannelContext, _ domain.Request) domain.Message {
	return domain.NewUnsupported(cc.Vendor, domain.OperationClose)
}

// Invoke 按操作类型分发到 Provider 的具体方法
func Invoke(ctx context.Context, p Provider, op domain.Operation, cc domain.ChannelContext, req domain.Request) domain.Message {
	switch op {
	case domain.OperationSend:
		return p.Send(ctx, cc, req)
	case domain.OperationQuery:
		return p.Query(ctx, cc, req)
	case domain.OperationRefund:
		return p.Refund(ctx, cc, req)
	case domain.OperationClose:
		return p.Close(ctx, cc, req)
	default:
		return domain.NewUnsupported(cc.Vendor, op)
	}
}
