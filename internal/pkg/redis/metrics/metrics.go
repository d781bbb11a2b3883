package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var _ redis.Hook = (*Hook)(nil)

// Hook 为限流器使用的 Redis 客户端收集命令耗时和结果
type Hook struct {
	commandCounter    *prometheus.CounterVec
	commandDuration   *prometheus.SummaryVec
	pipelineCounter   *prometheus.CounterVec
	connectionCounter *prometheus.CounterVec
}

// NewHook 创建指标并注册到 registerer
func NewHook(registerer prometheus.Registerer) (*Hook, error) {
	h := &Hook{
		commandCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redis_commands_total",
				Help: "Total number of Redis commands executed",
			},
			[]string{"command", "status"},
		),
		commandDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "redis_command_duration_seconds",
				Help:       "Redis command execution time in seconds",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			},
			[]string{"command"},
		),
		pipelineCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redis_pipeline_commands_total",
				Help: "Total number of Redis pipeline executions",
			},
			[]string{"status"},
		),
		connectionCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redis_connections_total",
				Help: "Total number of Redis connections created",
			},
			[]string{"status"},
		),
	}
	for _, c := range []prometheus.Collector{h.commandCounter, h.commandDuration, h.pipelineCounter, h.connectionCounter} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		startTime := time.Now()
		err := next(ctx, cmd)
		h.commandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(startTime).Seconds())
		h.commandCounter.WithLabelValues(cmd.Name(), status(err)).Inc()
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		res := status(err)
		for _, cmd := range cmds {
			if status(cmd.Err()) == statusError {
				res = statusError
				break
			}
		}
		h.pipelineCounter.WithLabelValues(res).Inc()
		return err
	}
}

func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		h.connectionCounter.WithLabelValues(status(err)).Inc()
		return conn, err
	}
}

// redis.Nil 不算失败
func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return statusError
	}
	return statusSuccess
}
