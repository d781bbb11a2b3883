package retry

import (
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
)

type Config struct {
	Type               string                    `json:"type" yaml:"type"` // 重试策略 fixed / exponential，空表示不重试
	FixedInterval      *FixedIntervalConfig      `json:"fixedInterval" yaml:"fixedInterval"`
	ExponentialBackoff *ExponentialBackoffConfig `json:"exponentialBackoff" yaml:"exponentialBackoff"`
}

type ExponentialBackoffConfig struct {
	// 初始重试间隔 单位ms
	InitialInterval int `json:"initialInterval" yaml:"initialInterval"`
	// 最大重试间隔 单位ms
	MaxInterval int `json:"maxInterval" yaml:"maxInterval"`
	// 最大重试次数
	MaxRetries int32 `json:"maxRetries" yaml:"maxRetries"`
}

type FixedIntervalConfig struct {
	MaxRetries int32 `json:"maxRetries" yaml:"maxRetries"`
	Interval   int   `json:"interval" yaml:"interval"` // 单位ms
}

// Validate 在启动时尽早暴露配置错误
func (c Config) Validate() error {
	_, err := NewRetry(c)
	return err
}

// Strategy 与 ekit retry.Strategy 的 Next 语义一致
type Strategy interface {
	// Next 返回下一次重试的间隔，不需要继续重试时第二个返回值为 false
	Next() (time.Duration, bool)
}

// NewRetry 重试策略有状态，每次调用都需要新建
func NewRetry(cfg Config) (Strategy, error) {
	switch cfg.Type {
	case "":
		return noRetry{}, nil
	case "fixed":
		if cfg.FixedInterval == nil {
			return nil, fmt.Errorf("fixed retry requires fixedInterval")
		}
		return retry.NewFixedIntervalRetryStrategy(msToDuration(cfg.FixedInterval.Interval), cfg.FixedInterval.MaxRetries)
	case "exponential":
		if cfg.ExponentialBackoff == nil {
			return nil, fmt.Errorf("exponential retry requires exponentialBackoff")
		}
		return retry.NewExponentialBackoffRetryStrategy(msToDuration(cfg.ExponentialBackoff.InitialInterval), msToDuration(cfg.ExponentialBackoff.MaxInterval), cfg.ExponentialBackoff.MaxRetries)
	default:
		return nil, fmt.Errorf("unknown retry type: %s", cfg.Type)
	}
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

type noRetry struct{}

func (noRetry) Next() (time.Duration, bool) {
	return 0, false
}
