package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	//go:embed lua/slide_window.lua
	slidingWindowScript string

	_ Limiter = (*RedisSlidingWindowLimiter)(nil)
)

type RedisSlidingWindowLimiter struct {
	cmd       redis.Cmdable
	interval  time.Duration
	rate      int
	keyPrefix string

	now    func() time.Time
	member func() string
}

// NewRedisSlidingWindowLimiter 创建一个基于Redis的滑动窗口限流器，interval 内最多放行 rate 个请求
func NewRedisSlidingWindowLimiter(cmd redis.Cmdable, interval time.Duration, rate int) *RedisSlidingWindowLimiter {
	return &RedisSlidingWindowLimiter{
		cmd:       cmd,
		interval:  interval,
		rate:      rate,
		keyPrefix: "ratelimit:",
		now:       time.Now,
		member:    newMember,
	}
}

// Limit 判断是否应该限流
func (r *RedisSlidingWindowLimiter) Limit(ctx context.Context, key string) (bool, error) {
	now := r.now().UnixMilli()
	return r.cmd.Eval(ctx, slidingWindowScript,
		[]string{r.getCountKey(key)},
		r.interval.Milliseconds(),
		r.rate,
		now,
		fmt.Sprintf("%d:%s", now, r.member()),
	).Bool()
}

// getCountKey 获取请求计数的Redis键
func (r *RedisSlidingWindowLimiter) getCountKey(key string) string {
	return fmt.Sprintf("%scount:%s", r.keyPrefix, key)
}

// 同一毫秒内的请求也要各自计数
func newMember() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}
