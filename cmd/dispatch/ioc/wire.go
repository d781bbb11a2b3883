//go:build wireinject

package ioc

import (
	"gitee.com/flycash/vendor-dispatch/internal/api/web"
	"gitee.com/flycash/vendor-dispatch/internal/ioc"
	"gitee.com/flycash/vendor-dispatch/internal/service/dispatcher"
	"github.com/google/wire"
)

var (
	transportSet = wire.NewSet(
		ioc.InitTransportConfig,
		ioc.InitHTTPClient,
		ioc.InitTransport,
		ioc.InitRedisClient,
		ioc.InitLimiter,
	)
	registrySet = wire.NewSet(
		ioc.InitMetricsCollector,
		ioc.InitRegistryBuilder,
		ioc.InitChannelSource,
		ioc.InitRegistry,
	)
	dispatcherSet = wire.NewSet(
		dispatcher.NewDispatcher,
		wire.Bind(new(dispatcher.Service), new(*dispatcher.Dispatcher)),
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		transportSet,

		// 渠道注册表
		registrySet,

		// 分发
		dispatcherSet,

		// HTTP 服务器
		web.NewHandler,
		ioc.InitWebServer,
		ioc.InitGovernor,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
