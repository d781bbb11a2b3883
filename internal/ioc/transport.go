package ioc

import (
	"net/http"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/pkg/retry"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	"github.com/gotomicro/ego/core/econf"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type TransportConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Retry   retry.Config  `yaml:"retry"`
}

func InitTransportConfig() TransportConfig {
	cfg := TransportConfig{
		Timeout: 5 * time.Second,
	}
	err := econf.UnmarshalKey("transport", &cfg)
	if err != nil {
		panic(err)
	}
	if err = cfg.Retry.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// InitHTTPClient 调用供应商使用的 http.Client，请求会被 otel 追踪
func InitHTTPClient(cfg TransportConfig) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.Timeout,
	}
}

func InitTransport(client *http.Client, cfg TransportConfig) transport.Client {
	return transport.NewHTTPClient(client, cfg.Retry)
}
