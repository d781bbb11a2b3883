package registry

import (
	"context"
	"errors"
	"testing"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// named 记录装饰顺序
type named struct {
	provider.Provider
	name string
}

func (n named) Name() string {
	return n.name + "(" + n.Provider.Name() + ")"
}

func newBuilder() *Builder {
	return NewBuilder().
		Factory("console", Factory{
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return console.NewProvider(), nil
			},
		}).
		Factory("smtp", Factory{
			Capabilities: []domain.Capability{domain.CapabilityEmail},
			Required:     []domain.ContextField{domain.ContextEndpoint, domain.ContextSignName},
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return console.NewProvider(), nil
			},
		}).
		Factory("broken", Factory{
			New: func(_ domain.ChannelContext) (provider.Provider, error) {
				return nil, errors.New("初始化 SDK 失败")
			},
		})
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		configs  []domain.ChannelConfig
		wantErrs []error
		wantKeys []domain.ChannelKey
	}{
		{
			name: "全部成功",
			configs: []domain.ChannelConfig{
				{Vendor: "console", Capability: domain.CapabilitySMS},
				{Vendor: "smtp", Capability: domain.CapabilityEmail, Endpoint: "smtp.example.com:465", SignName: "a@example.com"},
			},
			wantKeys: []domain.ChannelKey{"console-sms", "smtp-email"},
		},
		{
			name:     "没有渠道",
			configs:  nil,
			wantKeys: []domain.ChannelKey{},
		},
		{
			name: "未知供应商",
			configs: []domain.ChannelConfig{
				{Vendor: "unknown", Capability: domain.CapabilitySMS},
			},
			wantErrs: []error{errs.ErrUnknownVendor},
		},
		{
			name: "供应商不支持该能力",
			configs: []domain.ChannelConfig{
				{Vendor: "smtp", Capability: domain.CapabilitySMS, Endpoint: "smtp.example.com:465", SignName: "a@example.com"},
			},
			wantErrs: []error{errs.ErrInvalidChannelContext},
		},
		{
			name: "收集全部错误",
			configs: []domain.ChannelConfig{
				{Vendor: "console", Capability: domain.CapabilitySMS},
				{Vendor: "console", Capability: domain.CapabilitySMS},
				{Vendor: "smtp", Capability: domain.CapabilityEmail},
				{Vendor: "broken", Capability: domain.CapabilityIM},
				{Vendor: "unknown", Capability: domain.CapabilityIM},
			},
			wantErrs: []error{
				errs.ErrChannelDuplicate,
				errs.ErrInvalidChannelContext,
				errs.ErrUnknownVendor,
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, err := newBuilder().Build(tc.configs)
			if len(tc.wantErrs) > 0 {
				require.Error(t, err)
				for _, want := range tc.wantErrs {
					assert.ErrorIs(t, err, want)
				}
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.True(t, r.Sealed())
			assert.Equal(t, tc.wantKeys, r.Keys())
		})
	}
}

func TestBuilder_Decorate(t *testing.T) {
	t.Parallel()

	r, err := newBuilder().
		Decorate(
			func(p provider.Provider) provider.Provider { return named{Provider: p, name: "metrics"} },
			func(p provider.Provider) provider.Provider { return named{Provider: p, name: "tracing"} },
		).
		Build([]domain.ChannelConfig{{Vendor: "console", Capability: domain.CapabilityIM}})
	require.NoError(t, err)

	entry, err := r.Resolve("console-im")
	require.NoError(t, err)
	assert.Equal(t, "tracing(metrics(console))", entry.Provider.Name())
	assert.True(t, entry.Provider.Send(context.Background(), entry.Context, domain.Request{Receivers: []string{"ops"}, Content: "hi"}).IsSuccess())
	assert.Equal(t, []string{"broken", "console", "smtp"}, newBuilder().Vendors())
}
