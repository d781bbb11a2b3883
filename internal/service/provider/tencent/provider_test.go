package tencent

import (
	"context"
	"errors"
	"testing"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	tencentmocks "gitee.com/flycash/vendor-dispatch/internal/service/provider/tencent/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	sdkerrs "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	sms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
	"go.uber.org/mock/gomock"
)

func newChannel(t *testing.T) domain.ChannelContext {
	t.Helper()
	cc, err := domain.NewChannelContext(domain.ChannelConfig{
		Vendor:            Vendor,
		Capability:        domain.CapabilitySMS,
		AppID:             "1400000000",
		AccessKeyID:       "ak",
		Secret:            "sk",
		SignName:          "腾讯云",
		DefaultTemplateID: "1234567",
	})
	require.NoError(t, err)
	require.NoError(t, cc.Require(RequiredFields()...))
	return cc
}

func sendResponse(statuses ...*sms.SendStatus) *sms.SendSmsResponse {
	return &sms.SendSmsResponse{
		Response: &sms.SendSmsResponseParams{
			SendStatusSet: statuses,
			RequestId:     common.StringPtr("req-1"),
		},
	}
}

func status(phone, code string) *sms.SendStatus {
	return &sms.SendStatus{
		PhoneNumber: common.StringPtr(phone),
		Code:        common.StringPtr(code),
		Message:     common.StringPtr(code),
	}
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		req         domain.Request
		mock        func(ctrl *gomock.Controller) Client
		wantCode    domain.Code
		wantSubCode string
	}{
		{
			name: "全部成功",
			req:  domain.Request{Receivers: []string{"13800138000", "+8613900139000"}, Params: []string{"1234", "5"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *sms.SendSmsRequest) (*sms.SendSmsResponse, error) {
						assert.Equal(t, "1400000000", *req.SmsSdkAppId)
						assert.Equal(t, "1234567", *req.TemplateId)
						require.Len(t, req.PhoneNumberSet, 2)
						assert.Equal(t, "+8613800138000", *req.PhoneNumberSet[0])
						assert.Equal(t, "+8613900139000", *req.PhoneNumberSet[1])
						require.Len(t, req.TemplateParamSet, 2)
						return sendResponse(status("+8613800138000", "Ok"), status("+8613900139000", "Ok")), nil
					})
				return client
			},
			wantCode:    domain.CodeSuccess,
			wantSubCode: "Ok",
		},
		{
			name: "部分失败视为整体失败",
			req:  domain.Request{Receivers: []string{"13800138000", "13900139000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).
					Return(sendResponse(
						status("+8613800138000", "Ok"),
						status("+8613900139000", "LimitExceeded.PhoneNumberDailyLimit"),
					), nil)
				return client
			},
			wantCode:    domain.CodeFailure,
			wantSubCode: "LimitExceeded.PhoneNumberDailyLimit",
		},
		{
			name: "SDK 错误",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).
					Return(nil, sdkerrs.NewTencentCloudSDKError("AuthFailure.SignatureFailure", "签名错误", "req-2"))
				return client
			},
			wantCode:    domain.CodeFailure,
			wantSubCode: "AuthFailure.SignatureFailure",
		},
		{
			name: "网络错误",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
				return client
			},
			wantCode:    domain.CodeFailure,
			wantSubCode: "TRANSPORT_ERROR",
		},
		{
			name: "响应中没有状态",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).Return(sendResponse(), nil)
				return client
			},
			wantCode: domain.CodeFailure,
		},
		{
			name: "状态全为空",
			req:  domain.Request{Receivers: []string{"13800138000", "13900139000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).Return(sendResponse(nil, nil), nil)
				return client
			},
			wantCode: domain.CodeFailure,
		},
		{
			name: "回执少于手机号",
			req:  domain.Request{Receivers: []string{"13800138000", "13900139000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).
					Return(sendResponse(status("+8613800138000", "Ok")), nil)
				return client
			},
			wantCode: domain.CodeFailure,
		},
		{
			name: "回执号码不匹配",
			req:  domain.Request{Receivers: []string{"13800138000"}},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).
					Return(sendResponse(status("+8613900139000", "Ok")), nil)
				return client
			},
			wantCode: domain.CodeFailure,
		},
		{
			name: "缺少接收者",
			req:  domain.Request{},
			mock: func(ctrl *gomock.Controller) Client {
				client := tencentmocks.NewMockClient(ctrl)
				client.EXPECT().SendSmsWithContext(gomock.Any(), gomock.Any()).Times(0)
				return client
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
			assert.Equal(t, tc.wantSubCode, msg.SubCode)
		})
	}
}

func TestProvider_Unsupported(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := NewProvider(tencentmocks.NewMockClient(ctrl))
	cc := newChannel(t)
	for _, op := range []domain.Operation{domain.OperationQuery, domain.OperationRefund, domain.OperationClose} {
		var msg domain.Message
		switch op {
		case domain.OperationQuery:
			msg = p.Query(context.Background(), cc, domain.Request{OrderID: "1"})
		case domain.OperationRefund:
			msg = p.Refund(context.Background(), cc, domain.Request{OrderID: "1", Amount: 1})
		default:
			msg = p.Close(context.Background(), cc, domain.Request{OrderID: "1"})
		}
		assert.Equal(t, domain.CodeUnsupported, msg.Code, string(op))
	}
}
