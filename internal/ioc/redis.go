package ioc

import (
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/pkg/ratelimit"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/redis/metrics"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func InitRedisClient() *redis.Client {
	type Config struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}
	var cfg Config
	err := econf.UnmarshalKey("redis", &cfg)
	if err != nil {
		panic(err)
	}
	cmd := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	hook, err := metrics.NewHook(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	cmd.AddHook(hook)
	return cmd
}

// InitLimiter 未开启限流时返回 nil
func InitLimiter(cmd *redis.Client) ratelimit.Limiter {
	type Config struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
		Rate     int           `yaml:"rate"`
	}
	cfg := Config{
		Interval: time.Second,
	}
	err := econf.UnmarshalKey("rateLimit", &cfg)
	if err != nil {
		panic(err)
	}
	if !cfg.Enabled {
		return nil
	}
	if cfg.Rate <= 0 || cfg.Interval <= 0 {
		panic("rateLimit.rate 和 rateLimit.interval 必须大于 0")
	}
	elog.DefaultLogger.Info("渠道限流已开启", elog.Int("rate", cfg.Rate), elog.String("interval", cfg.Interval.String()))
	return ratelimit.NewRedisSlidingWindowLimiter(cmd, cfg.Interval, cfg.Rate)
}
