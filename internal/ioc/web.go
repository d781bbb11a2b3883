package ioc

import (
	"os"

	"gitee.com/flycash/vendor-dispatch/internal/api/web"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/server/egovernor"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	Web      *egin.Component
	Governor *egovernor.Component
}

func InitWebServer(handler *web.Handler) *egin.Component {
	server := egin.Load("server.http").Build()
	server.Use(web.NewObservabilityBuilder(prometheus.DefaultRegisterer).Build())

	var middlewares []gin.HandlerFunc
	// 未配置密钥时不校验令牌，仅用于本地调试
	if key := os.ExpandEnv(econf.GetString("server.http.jwtKey")); key != "" {
		middlewares = append(middlewares, web.NewJWTBuilder(jwt.NewAuth(key)).Build())
	}
	handler.PublicRoutes(server.Engine, middlewares...)
	return server
}

func InitGovernor() *egovernor.Component {
	return egovernor.Load("server.governor").Build()
}
