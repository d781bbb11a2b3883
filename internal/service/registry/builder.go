package registry

import (
	"fmt"
	"slices"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
)

// Factory 根据渠道配置创建供应商实现
type Factory struct {
	// Capabilities 为空表示不限制
	Capabilities []domain.Capability
	Required     []domain.ContextField
	New          func(cc domain.ChannelContext) (provider.Provider, error)
}

// Decorator 包装供应商实现，例如链路追踪和指标
type Decorator func(p provider.Provider) provider.Provider

// Builder 按供应商工厂表批量创建渠道，并返回封存的注册表
type Builder struct {
	factories  map[string]Factory
	decorators []Decorator
	logger     *elog.Component
}

func NewBuilder() *Builder {
	return &Builder{
		factories: make(map[string]Factory),
		logger:    elog.DefaultLogger,
	}
}

// Factory 登记供应商工厂，后登记的覆盖先登记的
func (b *Builder) Factory(vendor string, f Factory) *Builder {
	b.factories[vendor] = f
	return b
}

// Decorate 按登记顺序由内向外包装
func (b *Builder) Decorate(decorators ...Decorator) *Builder {
	b.decorators = append(b.decorators, decorators...)
	return b
}

func (b *Builder) Vendors() []string {
	vendors := make([]string, 0, len(b.factories))
	for v := range b.factories {
		vendors = append(vendors, v)
	}
	slices.Sort(vendors)
	return vendors
}

// Build 所有渠道都创建成功才返回注册表，否则返回全部错误
func (b *Builder) Build(configs []domain.ChannelConfig) (*Registry, error) {
	r := NewRegistry()
	var err error
	for _, cfg := range configs {
		if err1 := b.register(r, cfg); err1 != nil {
			b.logger.Error("创建渠道失败", elog.String("channel", cfg.Key().String()), elog.FieldErr(err1))
			err = multierror.Append(err, err1)
		}
	}
	if err != nil {
		return nil, err
	}
	r.Seal()
	return r, nil
}

func (b *Builder) register(r *Registry, cfg domain.ChannelConfig) error {
	cc, err := domain.NewChannelContext(cfg)
	if err != nil {
		return err
	}
	f, ok := b.factories[cc.Vendor]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownVendor, cc.Vendor)
	}
	if len(f.Capabilities) > 0 && !slices.Contains(f.Capabilities, cc.Capability) {
		return fmt.Errorf("%w: %s 不支持 %s", errs.ErrInvalidChannelContext, cc.Vendor, cc.Capability)
	}
	if err = cc.Require(f.Required...); err != nil {
		return err
	}
	p, err := f.New(cc)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrInvalidChannelContext, cc.Key(), err)
	}
	for _, d := range b.decorators {
		p = d(p)
	}
	return r.Register(cc.Key(), p, cc)
}
