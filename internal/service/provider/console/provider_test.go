package console

import (
	"context"
	"testing"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChannel(t *testing.T) domain.ChannelContext {
	t.Helper()
	cc, err := domain.NewChannelContext(domain.ChannelConfig{
		Vendor:     Vendor,
		Capability: domain.CapabilityEmail,
	})
	require.NoError(t, err)
	require.NoError(t, cc.Require(RequiredFields()...))
	return cc
}

func TestProvider(t *testing.T) {
	t.Parallel()

	cc := newChannel(t)
	p := NewProvider()
	req := domain.Request{
		Receivers: []string{"dev@example.com"},
		Subject:   "hi",
		Content:   "hello",
		OrderID:   "o-1",
		Amount:    100,
	}
	for _, op := range []domain.Operation{domain.OperationSend, domain.OperationQuery, domain.OperationRefund, domain.OperationClose} {
		msg := provider.Invoke(context.Background(), p, op, cc, req)
		assert.True(t, msg.IsSuccess(), string(op))
		assert.Equal(t, string(op), msg.Msg)
		assert.Equal(t, req, msg.Data)
	}
}

func TestProvider_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		op   domain.Operation
		req  domain.Request
	}{
		{name: "空请求发送", op: domain.OperationSend, req: domain.Request{}},
		{name: "没有模板也没有正文", op: domain.OperationSend, req: domain.Request{Receivers: []string{"dev@example.com"}}},
		{name: "接收者为空串", op: domain.OperationSend, req: domain.Request{Receivers: []string{""}, Content: "hello"}},
		{name: "查询缺少订单号", op: domain.OperationQuery, req: domain.Request{}},
		{name: "退款缺少金额", op: domain.OperationRefund, req: domain.Request{OrderID: "o-1"}},
		{name: "关闭缺少订单号", op: domain.OperationClose, req: domain.Request{Amount: 100}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			msg := provider.Invoke(context.Background(), NewProvider(), tc.op, newChannel(t), tc.req)
			assert.Equal(t, domain.CodeFailure, msg.Code)
			assert.NotEmpty(t, msg.Msg)
		})
	}
}

func TestProvider_TemplateFromChannel(t *testing.T) {
	t.Parallel()

	cc, err := domain.NewChannelContext(domain.ChannelConfig{
		Vendor:            Vendor,
		Capability:        domain.CapabilitySMS,
		DefaultTemplateID: "T-1",
	})
	require.NoError(t, err)

	msg := NewProvider().Send(context.Background(), cc, domain.Request{Receivers: []string{"13800138000"}})
	require.True(t, msg.IsSuccess())
	sent, ok := msg.Data.(domain.Request)
	require.True(t, ok)
	assert.Equal(t, "T-1", sent.TemplateID)
}
