package ioc

import (
	"context"

	"github.com/gotomicro/ego/core/econf"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitZipkinTracer 未配置 zipkin 地址时不上报，返回的函数用于退出时刷新
func InitZipkinTracer() func(ctx context.Context) error {
	type Config struct {
		Endpoint    string `yaml:"endpoint"`
		ServiceName string `yaml:"serviceName"`
	}
	cfg := Config{
		ServiceName: "vendor-dispatch",
	}
	err := econf.UnmarshalKey("trace.zipkin", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.Endpoint == "" {
		return func(_ context.Context) error {
			return nil
		}
	}

	exporter, err := zipkin.New(cfg.Endpoint)
	if err != nil {
		panic(err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
