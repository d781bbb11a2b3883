package tracing

import (
	"context"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 为供应商实现添加链路追踪的装饰器
type Provider struct {
	provider provider.Provider
	tracer   trace.Tracer
}

// NewProvider 创建一个新的带有链路追踪的供应商
func NewProvider(p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		tracer:   otel.Tracer("vendor-dispatch/provider"),
	}
}

func (p *Provider) Name() string {
	return p.provider.Name()
}

func (p *Provider) Operations() []domain.Operation {
	return provider.OperationsOf(p.provider)
}

func (p *Provider) Send(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.invoke(ctx, domain.OperationSend, cc, req)
}

func (p *Provider) Query(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.invoke(ctx, domain.OperationQuery, cc, req)
}

func (p *Provider) Refund(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.invoke(ctx, domain.OperationRefund, cc, req)
}

func (p *Provider) Close(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.invoke(ctx, domain.OperationClose, cc, req)
}

func (p *Provider) invoke(ctx context.Context, op domain.Operation, cc domain.ChannelContext, req domain.Request) domain.Message {
	ctx, span := p.tracer.Start(ctx, "Provider."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider.name", p.provider.Name()),
			attribute.String("channel.key", cc.Key().String()),
			attribute.String("request.orderId", req.OrderID),
			attribute.Int("request.receivers", len(req.Receivers)),
		))
	defer span.End()

	msg := provider.Invoke(ctx, p.provider, op, cc, req)

	span.SetAttributes(
		attribute.String("message.code", msg.Code.String()),
		attribute.String("message.subCode", msg.SubCode),
	)
	if msg.Code == domain.CodeFailure {
		span.SetStatus(codes.Error, msg.Msg)
	}
	return msg
}
