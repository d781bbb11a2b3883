package main

import (
	"context"

	"gitee.com/flycash/vendor-dispatch/cmd/dispatch/ioc"
	prodioc "gitee.com/flycash/vendor-dispatch/internal/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时直接使用进程环境变量
	_ = godotenv.Load()

	egoApp := ego.New()
	shutdown := prodioc.InitZipkinTracer()
	app := ioc.InitApp()
	if err := egoApp.Serve(app.Governor, app.Web).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
	if err := shutdown(context.Background()); err != nil {
		elog.Error("关闭链路追踪失败", elog.FieldErr(err))
	}
}
