package jdcloud

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	transportmocks "gitee.com/flycash/vendor-dispatch/internal/pkg/transport/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newChannel(t *testing.T) domain.ChannelContext {
	t.Helper()
	cc, err := domain.NewChannelContext(domain.ChannelConfig{
		Vendor:            Vendor,
		Capability:        domain.CapabilitySMS,
		Endpoint:          "https://sms.jdcloud-api.com",
		AppID:             "app-1",
		AccessKeyID:       "ak",
		Secret:            "sk",
		SignName:          "sign-1",
		DefaultTemplateID: "tpl-1",
	})
	require.NoError(t, err)
	require.NoError(t, cc.Require(RequiredFields()...))
	return cc
}

func newTestProvider(tr transport.Client) *Provider {
	return NewProvider(tr,
		WithClock(func() time.Time { return fixedNow }),
		WithNonce(func() string { return "nonce-1" }))
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		req         domain.Request
		mock        func(ctrl *gomock.Controller) transport.Client
		wantCode    domain.Code
		wantSubCode string
	}{
		{
			name: "发送成功",
			req:  domain.Request{Receivers: []string{"13800138000"}, Params: []string{"1234"}},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req transport.Request) (transport.Response, error) {
						assert.Equal(t, http.MethodPost, req.Method)
						assert.Equal(t, "https://sms.jdcloud-api.com/v1/regions/cn-north-1/batchSend", req.URL)
						assert.JSONEq(t, `{"appId":"app-1","templateId":"tpl-1","signId":"sign-1","phoneList":["13800138000"],"params":["1234"]}`, string(req.Body))
						assert.True(t, strings.HasPrefix(req.Header.Get("Authorization"), algorithm+" Credential=ak/20250301/cn-north-1/sms/"))
						return transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"requestId":"r-1","statusCode":200,"message":"success"}`)}, nil
					})
				return tr
			},
			wantCode:    domain.CodeSuccess,
			wantSubCode: "200",
		},
		{
			name: "业务状态失败",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					Return(transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"requestId":"r-2","statusCode":403,"message":"sign not approved"}`)}, nil)
				return tr
			},
			wantCode:    domain.CodeFailure,
			wantSubCode: "403",
		},
		{
			name: "HTTP 500",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					Return(transport.Response{StatusCode: http.StatusInternalServerError, Body: []byte(`{"statusCode":500,"message":"internal error"}`)}, nil)
				return tr
			},
			wantCode:    domain.CodeFailure,
			wantSubCode: "500",
		},
		{
			name: "响应缺少 statusCode",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) transport.Client {
				tr := transportmocks.NewMockClient(ctrl)
				tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
					Return(transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"requestId":"r-3"}`)}, nil)
				return tr
			},
			wantCode:    domain.CodeFailure,
			wantSubCode: "200",
		},
		{
			name: "没有接收者",
			req:  domain.Request{},
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

			msg := newTestProvider(tc.mock(ctrl)).Send(context.Background(), newChannel(t), tc.req)
			assert.Equal(t, tc.wantCode, msg.Code)
			assert.Equal(t, tc.wantSubCode, msg.SubCode)
		})
	}
}

func TestProvider_Query(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		body        string
		wantCode    domain.Code
		wantSubCode string
	}{
		{
			name:        "全部送达",
			body:        `{"requestId":"r-9","statusCode":200,"data":[{"phoneNum":"13800138000","status":"DELIVRD"},{"phoneNum":"13900139000","status":"DELIVRD"}]}`,
			wantCode:    domain.CodeSuccess,
			wantSubCode: "DELIVRD",
		},
		{
			name:        "等待回执",
			body:        `{"requestId":"r-9","statusCode":200,"data":[{"phoneNum":"13800138000","status":"DELIVRD"},{"phoneNum":"13900139000","status":"SENDING"}]}`,
			wantCode:    domain.CodeSuccess,
			wantSubCode: "SENDING",
		},
		{
			name:        "部分未送达",
			body:        `{"requestId":"r-9","statusCode":200,"data":[{"phoneNum":"13800138000","status":"UNDELIV","errorCode":"MK:0001"}]}`,
			wantCode:    domain.CodeFailure,
			wantSubCode: "UNDELIV",
		},
		{
			name:     "没有回执",
			body:     `{"requestId":"r-9","statusCode":200,"data":[]}`,
			wantCode: domain.CodeFailure,
		},
		{
			// 发送接口的成功码不是回执状态
			name:        "接口失败",
			body:        `{"requestId":"r-9","statusCode":404,"message":"requestId not found"}`,
			wantCode:    domain.CodeFailure,
			wantSubCode: "404",
		},
		{
			name:        "未知状态",
			body:        `{"requestId":"r-9","statusCode":200,"data":[{"phoneNum":"13800138000","status":"UNKNOWN"}]}`,
			wantCode:    domain.CodeFailure,
			wantSubCode: "UNKNOWN",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tr := transportmocks.NewMockClient(ctrl)
			tr.EXPECT().Invoke(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req transport.Request) (transport.Response, error) {
					assert.Equal(t, http.MethodGet, req.Method)
					assert.Equal(t, "https://sms.jdcloud-api.com/v1/regions/cn-north-1/statusReport?appId=app-1&requestId=r-1", req.URL)
					return transport.Response{StatusCode: http.StatusOK, Body: []byte(tc.body)}, nil
				})

			msg := newTestProvider(tr).Query(context.Background(), newChannel(t), domain.Request{OrderID: "r-1"})
			assert.Equal(t, tc.wantCode, msg.Code)
			assert.Equal(t, tc.wantSubCode, msg.SubCode)
		})
	}
}

func TestProvider_Unsupported(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := transportmocks.NewMockClient(ctrl)
	p := newTestProvider(tr)
	cc := newChannel(t)

	assert.Equal(t, domain.CodeUnsupported, p.Refund(context.Background(), cc, domain.Request{OrderID: "1", Amount: 1}).Code)
	assert.Equal(t, domain.CodeUnsupported, p.Close(context.Background(), cc, domain.Request{OrderID: "1"}).Code)
	assert.Equal(t, Vendor, p.Name())
}

func TestSign(t *testing.T) {
	t.Parallel()

	cc := newChannel(t)
	b := &builder{
		now:   func() time.Time { return fixedNow },
		nonce: func() string { return "nonce-1" },
	}
	req, err := b.buildSend(cc, domain.Request{Receivers: []string{"13800138000"}, TemplateID: "tpl-1"})
	require.NoError(t, err)

	first, err := Sign(cc, req.Clone())
	require.NoError(t, err)
	second, err := Sign(cc, req.Clone())
	require.NoError(t, err)
	// 相同输入得到相同签名
	assert.Equal(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))
	assert.Equal(t, "20250301T080000Z", first.Header.Get(headerDate))

	// 密钥不同签名不同
	other, err := domain.NewChannelContext(domain.ChannelConfig{
		Vendor:      Vendor,
		Capability:  domain.CapabilitySMS,
		Endpoint:    "https://sms.jdcloud-api.com",
		AppID:       "app-1",
		AccessKeyID: "ak",
		Secret:      "another",
	})
	require.NoError(t, err)
	third, err := Sign(other, req.Clone())
	require.NoError(t, err)
	assert.NotEqual(t, first.Header.Get("Authorization"), third.Header.Get("Authorization"))

	// 缺少日期头时无法签名
	req.Header.Del(headerDate)
	_, err = Sign(cc, req)
	assert.Error(t, err)
}
