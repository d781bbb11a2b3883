package webhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/jwt"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	transportmocks "gitee.com/flycash/vendor-dispatch/internal/pkg/transport/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newChannel(t *testing.T) domain.ChannelContext {
	t.Helper()
	cc, err := domain.NewChannelContext(domain.ChannelConfig{
		Vendor:     Vendor,
		Capability: domain.CapabilityIM,
		Endpoint:   "https://hooks.example.com/notify",
		AppID:      "dispatch",
		Secret:     "webhook-secret",
	})
	require.NoError(t, err)
	require.NoError(t, cc.Require(RequiredFields()...))
	return cc
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		req      domain.Request
		mock     func(ctrl *gomock.Controller) transport.Client
		wantCode domain.Code
	}{
		{
			name: "推送成功",
			req:  domain.Request{Receivers: []string{"u1"}, Content: "部署完成"},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req transport.Request) (transport.Response, error) {
						assert.Equal(t, "https://hooks.example.com/notify", req.URL)
						assert.JSONEq(t, `{"channel":"webhook-im","receivers":["u1"],"content":"部署完成"}`, string(req.Body))

						// 接收方可以用共享密钥校验令牌和 body 摘要
						claims, err := jwt.NewAuth("webhook-secret").Decode(req.Header.Get("Authorization"))
						require.NoError(t, err)
						sum := sha256.Sum256(req.Body)
						assert.Equal(t, hex.EncodeToString(sum[:]), claims["bh"])
						assert.Equal(t, "dispatch", claims["sub"])
						return transport.Response{StatusCode: http.StatusOK, Body: []byte("ok")}, nil
					})
				return tr
			},
			wantCode: domain.CodeSuccess,
		},
		{
			name: "对端返回错误状态码",
			req:  domain.Request{Receivers: []string{"u1"}},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					Return(transport.Response{StatusCode: http.StatusServiceUnavailable}, nil)
				return tr
			},
			wantCode: domain.CodeFailure,
		},
		{
			name: "网络错误",
			req:  domain.Request{Receivers: []string{"u1"}},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					Return(transport.Response{}, errors.New("no such host"))
				return tr
			},
			wantCode: domain.CodeFailure,
		},
		{
			name: "缺少接收者",
			req:  domain.Request{Content: "hi"},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).Times(0)
				return tr
			},
			wantCode: domain.CodeFailure,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			msg := NewProvider(tc.mock(ctrl)).Send(context.Background(), newChannel(t), tc.req)
			assert.Equal(t, tc.wantCode, msg.Code)
		})
	}
}

func TestSign(t *testing.T) {
	t.Parallel()

	cc := newChannel(t)
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	req, err := buildSend(cc, domain.Request{Receivers: []string{"u1"}}, now)
	require.NoError(t, err)
	assert.Equal(t, "1740816000", req.Header.Get(HeaderTimestamp))

	first, err := Sign(cc, req.Clone())
	require.NoError(t, err)
	second, err := Sign(cc, req.Clone())
	require.NoError(t, err)
	assert.Equal(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))

	// body 不同令牌不同
	tampered := req.Clone()
	tampered.Body = []byte(`{"receivers":["u2"]}`)
	third, err := Sign(cc, tampered)
	require.NoError(t, err)
	assert.NotEqual(t, first.Header.Get("Authorization"), third.Header.Get("Authorization"))

	req.Header.Del(HeaderTimestamp)
	_, err = Sign(cc, req)
	assert.Error(t, err)
}
