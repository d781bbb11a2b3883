package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		cfg       Config
		wantErr   bool
		wantNexts []bool
	}{
		{
			name:      "未配置时不重试",
			cfg:       Config{},
			wantNexts: []bool{false},
		},
		{
			name: "固定间隔重试两次",
			cfg: Config{
				Type: "fixed",
				FixedInterval: &FixedIntervalConfig{
					MaxRetries: 2,
					Interval:   10,
				},
			},
			wantNexts: []bool{true, true, false},
		},
		{
			name: "指数退避重试一次",
			cfg: Config{
				Type: "exponential",
				ExponentialBackoff: &ExponentialBackoffConfig{
					InitialInterval: 10,
					MaxInterval:     100,
					MaxRetries:      1,
				},
			},
			wantNexts: []bool{true, false},
		},
		{
			name:    "固定间隔缺少参数",
			cfg:     Config{Type: "fixed"},
			wantErr: true,
		},
		{
			name:    "指数退避缺少参数",
			cfg:     Config{Type: "exponential"},
			wantErr: true,
		},
		{
			name:    "未知类型",
			cfg:     Config{Type: "random"},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			strategy, err := NewRetry(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				assert.Error(t, tc.cfg.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, tc.cfg.Validate())
			for i, want := range tc.wantNexts {
				interval, ok := strategy.Next()
				assert.Equal(t, want, ok, "第 %d 次", i+1)
				if ok {
					assert.Greater(t, interval, time.Duration(0))
				}
			}
		})
	}
}
