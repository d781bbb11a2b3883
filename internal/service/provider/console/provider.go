package console

import (
	"context"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

const Vendor = "console"

var _ provider.Provider = (*Provider)(nil)

// Provider 输出到日志，本地调试使用，请求校验通过的操作都成功
type Provider struct {
	logger *elog.Component
}

func NewProvider() *Provider {
	return &Provider{
		logger: elog.DefaultLogger,
	}
}

func RequiredFields() []domain.ContextField {
	return nil
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Send(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	// 有正文时可以不指定模板
	fields := []string{domain.FieldReceivers, domain.FieldTemplateID}
	if req.Content != "" {
		fields = fields[:1]
	}
	return p.log(cc, domain.OperationSend, req, fields...)
}

func (p *Provider) Query(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.log(cc, domain.OperationQuery, req, domain.FieldOrderID)
}

func (p *Provider) Refund(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.log(cc, domain.OperationRefund, req, domain.FieldOrderID, domain.FieldAmount)
}

func (p *Provider) Close(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.log(cc, domain.OperationClose, req, domain.FieldOrderID)
}

func (p *Provider) log(cc domain.ChannelContext, op domain.Operation, req domain.Request, required ...string) domain.Message {
	req = req.WithDefaults(cc)
	if err := req.Validate(required...); err != nil {
		return domain.NewFailure("", err.Error())
	}
	p.logger.Info("控制台渠道",
		elog.String("channel", cc.Key().String()),
		elog.String("op", string(op)),
		elog.Any("request", req))
	return domain.NewSuccess("OK", string(op), req)
}
