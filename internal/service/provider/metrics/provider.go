package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/prometheus/client_golang/prometheus"
)

var _ provider.Provider = (*Provider)(nil)

// Collector 所有渠道共享的指标，只能注册一次
type Collector struct {
	durationSummary *prometheus.SummaryVec
	statusCounter   *prometheus.CounterVec
}

// NewCollector 创建指标并注册到 registerer
func NewCollector(registerer prometheus.Registerer) (*Collector, error) {
	durationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "provider_invoke_duration_seconds",
			Help:       "供应商调用耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"channel", "op", "code"},
	)

	statusCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_invoke_total",
			Help: "供应商调用结果统计",
		},
		[]string{"channel", "op", "code"},
	)

	for _, c := range []prometheus.Collector{durationSummary, statusCounter} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return &Collector{
		durationSummary: durationSummary,
		statusCounter:   statusCounter,
	}, nil
}

// Provider 为供应商实现添加指标收集的装饰器
type Provider struct {
	provider  provider.Provider
	collector *Collector
}

// NewProvider 创建一个新的带有指标收集的供应商
func NewProvider(collector *Collector, p provider.Provider) *Provider {
	return &Provider{
		provider:  p,
		collector: collector,
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
	// 开始计时
	startTime := time.Now()

	msg := provider.Invoke(ctx, p.provider, op, cc, req)

	labels := []string{cc.Key().String(), string(op), msg.Code.String()}
	p.collector.statusCounter.WithLabelValues(labels...).Inc()
	p.collector.durationSummary.WithLabelValues(labels...).Observe(time.Since(startTime).Seconds())
	return msg
}
