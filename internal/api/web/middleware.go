package web

import (
	"net/http"
	"strconv"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ClaimsKey = "claims"

// JWTBuilder 校验 Authorization 中的 Bearer 令牌
type JWTBuilder struct {
	auth *jwt.Auth
}

func NewJWTBuilder(auth *jwt.Auth) *JWTBuilder {
	return &JWTBuilder{auth: auth}
}

func (b *JWTBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ctx.GetHeader("Authorization")
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResp{Msg: "缺少令牌"})
			return
		}
		claims, err := b.auth.Decode(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResp{Msg: err.Error()})
			return
		}
		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// ObservabilityBuilder 按路由统计接口耗时
type ObservabilityBuilder struct {
	apiDurationHistogram *prometheus.HistogramVec
}

func NewObservabilityBuilder(registerer prometheus.Registerer) *ObservabilityBuilder {
	return &ObservabilityBuilder{
		apiDurationHistogram: promauto.With(registerer).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_server_handling_seconds",
				Help:    "Histogram of response latency (seconds) of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "op", "status"},
		),
	}
}

func (b *ObservabilityBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()
		ctx.Next()
		b.apiDurationHistogram.WithLabelValues(
			ctx.FullPath(),
			ctx.Param("op"),
			strconv.Itoa(ctx.Writer.Status()),
		).Observe(time.Since(startTime).Seconds())
	}
}
