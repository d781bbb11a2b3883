package limit

import (
	"context"
	"fmt"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/ratelimit"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

// SubCodeRateLimited 被限流时 Message 的子码
const SubCodeRateLimited = "RATE_LIMITED"

var _ provider.Provider = (*Provider)(nil)

// Provider 按渠道限流的装饰器，被限流的调用不会到达供应商
type Provider struct {
	provider provider.Provider
	limiter  ratelimit.Limiter
	logger   *elog.Component
}

func NewProvider(limiter ratelimit.Limiter, p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		limiter:  limiter,
		logger:   elog.DefaultLogger,
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
	// 不支持的操作不会调用供应商，也不占用配额
	if !provider.Supports(p.provider, op) {
		return provider.Invoke(ctx, p.provider, op, cc, req)
	}
	key := cc.Key().String()
	limited, err := p.limiter.Limit(ctx, key)
	if err != nil {
		// 保守策略
		p.logger.Warn("限流器异常", elog.String("channel", key), elog.String("op", string(op)), elog.FieldErr(err))
		return domain.NewFailure(SubCodeRateLimited, fmt.Sprintf("渠道 %s 限流器不可用", key))
	}
	if limited {
		return domain.NewFailure(SubCodeRateLimited, fmt.Sprintf("渠道 %s 触发限流", key))
	}
	return provider.Invoke(ctx, p.provider, op, cc, req)
}
