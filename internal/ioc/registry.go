package ioc

import (
	"context"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/ratelimit"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	"gitee.com/flycash/vendor-dispatch/internal/repository"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/aliyun"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/console"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/jdcloud"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/limit"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/metrics"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/smtp"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/stripe"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/tencent"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/tracing"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/twilio"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/webhook"
	"gitee.com/flycash/vendor-dispatch/internal/service/registry"
	"github.com/prometheus/client_golang/prometheus"
)

func InitMetricsCollector() *metrics.Collector {
	collector, err := metrics.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	return collector
}

// InitRegistryBuilder 所有支持的供应商都在这里登记
func InitRegistryBuilder(tr transport.Client, collector *metrics.Collector, limiter ratelimit.Limiter) *registry.Builder {
	sms := []domain.Capability{domain.CapabilitySMS}
	builder := registry.NewBuilder()
	if limiter != nil {
		// 限流在最内层，被限流的调用也会计入指标
		builder.Decorate(func(p provider.Provider) provider.Provider {
			return limit.NewProvider(limiter, p)
		})
	}
	return builder.
		Factory(jdcloud.Vendor, registry.Factory{
			Capabilities: sms,
			Required:     jdcloud.RequiredFields(),
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return jdcloud.NewProvider(tr), nil
			},
		}).
		Factory(aliyun.Vendor, registry.Factory{
			Capabilities: sms,
			Required:     aliyun.RequiredFields(),
			New: func(cc domain.ChannelContext) (provider.Provider, error) {
				client, err := aliyun.NewClient(cc)
				if err != nil {
					return nil, err
				}
				return aliyun.NewProvider(client), nil
			},
		}).
		Factory(tencent.Vendor, registry.Factory{
			Capabilities: sms,
			Required:     tencent.RequiredFields(),
			New: func(cc domain.ChannelContext) (provider.Provider, error) {
				client, err := tencent.NewClient(cc)
				if err != nil {
					return nil, err
				}
				return tencent.NewProvider(client), nil
			},
		}).
		Factory(twilio.Vendor, registry.Factory{
			Capabilities: sms,
			Required:     twilio.RequiredFields(),
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return twilio.NewProvider(tr), nil
			},
		}).
		Factory(stripe.Vendor, registry.Factory{
			Capabilities: []domain.Capability{domain.CapabilityPayment},
			Required:     stripe.RequiredFields(),
			New: func(cc domain.ChannelContext) (provider.Provider, error) {
				return stripe.NewProvider(stripe.NewClient(cc)), nil
			},
		}).
		Factory(smtp.Vendor, registry.Factory{
			Capabilities: []domain.Capability{domain.CapabilityEmail},
			Required:     smtp.RequiredFields(),
			New: func(cc domain.ChannelContext) (provider.Provider, error) {
				sender, err := smtp.NewSender(cc)
				if err != nil {
					return nil, err
				}
				return smtp.NewProvider(sender), nil
			},
		}).
		Factory(webhook.Vendor, registry.Factory{
			Capabilities: []domain.Capability{domain.CapabilityIM},
			Required:     webhook.RequiredFields(),
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return webhook.NewProvider(tr), nil
			},
		}).
		Factory(console.Vendor, registry.Factory{
			Required: console.RequiredFields(),
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return console.NewProvider(), nil
			},
		}).
		Decorate(
			func(p provider.Provider) provider.Provider {
				return metrics.NewProvider(collector, p)
			},
			func(p provider.Provider) provider.Provider {
				return tracing.NewProvider(p)
			},
		)
}

// InitRegistry 读取渠道配置并创建封存的注册表，任何渠道配置错误都会阻止启动
func InitRegistry(builder *registry.Builder, source repository.ChannelSource) *registry.Registry {
	const timeout = 5 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	configs, err := source.Load(ctx)
	if err != nil {
		panic(err)
	}
	r, err := builder.Build(configs)
	if err != nil {
		panic(err)
	}
	return r
}
