package dispatcher

import (
	"context"
	"fmt"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"gitee.com/flycash/vendor-dispatch/internal/service/registry"
	"github.com/gotomicro/ego/core/elog"
)

// Service 调用方入口
// 只有配置错误（渠道未注册、操作非法）才返回 error，供应商的任何结果都体现在 Message 中。
//
//go:generate mockgen -source=./dispatcher.go -destination=./mocks/dispatcher.mock.go -package=dispatchermocks Service
type Service interface {
	Dispatch(ctx context.Context, key domain.ChannelKey, op domain.Operation, req domain.Request, overrides ...domain.Override) (domain.Message, error)
	Send(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error)
	Query(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error)
	Refund(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error)
	Close(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error)
}

var _ Service = (*Dispatcher)(nil)

type Dispatcher struct {
	registry *registry.Registry
	logger   *elog.Component
}

func NewDispatcher(r *registry.Registry) *Dispatcher {
	return &Dispatcher{
		registry: r,
		logger:   elog.DefaultLogger,
	}
}

// Dispatch 第一次调用时封存注册表
func (d *Dispatcher) Dispatch(ctx context.Context, key domain.ChannelKey, op domain.Operation,
	req domain.Request, overrides ...domain.Override,
) (domain.Message, error) {
	if !op.IsValid() {
		return domain.Message{}, fmt.Errorf("%w: 操作 = %q", errs.ErrInvalidParameter, op)
	}
	d.registry.Seal()
	entry, err := d.registry.Resolve(key, overrides...)
	if err != nil {
		d.logger.Error("解析渠道失败",
			elog.String("channel", key.String()),
			elog.String("op", string(op)),
			elog.FieldErr(err))
		return domain.Message{}, err
	}
	return provider.Invoke(ctx, entry.Provider, op, entry.Context, req), nil
}

func (d *Dispatcher) Send(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error) {
	return d.Dispatch(ctx, key, domain.OperationSend, req, overrides...)
}

func (d *Dispatcher) Query(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error) {
	return d.Dispatch(ctx, key, domain.OperationQuery, req, overrides...)
}

func (d *Dispatcher) Refund(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error) {
	return d.Dispatch(ctx, key, domain.OperationRefund, req, overrides...)
}

func (d *Dispatcher) Close(ctx context.Context, key domain.ChannelKey, req domain.Request, overrides ...domain.Override) (domain.Message, error) {
	return d.Dispatch(ctx, key, domain.OperationClose, req, overrides...)
}
