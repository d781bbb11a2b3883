package domain

import (
	"testing"

	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     Request
		fields  []string
		wantErr error
	}{
		{
			name: "只校验声明的字段",
			req: Request{
				Receivers:  []string{"+15555550100"},
				TemplateID: "T1",
			},
			fields: []string{FieldReceivers, FieldTemplateID},
		},
		{
			name:   "没有声明字段时不校验",
			req:    Request{},
			fields: nil,
		},
		{
			name: "接收者为空",
			req: Request{
				TemplateID: "T1",
			},
			fields:  []string{FieldReceivers, FieldTemplateID},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name: "接收者中有空字符串",
			req: Request{
				Receivers:  []string{"+15555550100", ""},
				TemplateID: "T1",
			},
			fields:  []string{FieldReceivers},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name:    "金额必须大于0",
			req:     Request{OrderID: "pi_1", Amount: 0},
			fields:  []string{FieldOrderID, FieldAmount},
			wantErr: errs.ErrInvalidParameter,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.req.Validate(tc.fields...)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRequest_WithDefaults(t *testing.T) {
	t.Parallel()

	cc, err := NewChannelContext(ChannelConfig{
		Vendor:            "aliyun",
		Capability:        CapabilitySMS,
		SignName:          "默认签名",
		DefaultTemplateID: "SMS_1",
	})
	require.NoError(t, err)

	req := Request{
		Receivers:   []string{"13800138000"},
		NamedParams: map[string]string{"code": "1234"},
	}
	res := req.WithDefaults(cc)
	assert.Equal(t, "默认签名", res.SignName)
	assert.Equal(t, "SMS_1", res.TemplateID)

	// 返回的是深拷贝
	res.Receivers[0] = "13900139000"
	res.NamedParams["code"] = "0000"
	assert.Equal(t, "13800138000", req.Receivers[0])
	assert.Equal(t, "1234", req.NamedParams["code"])

	// 请求中已经指定的值不会被覆盖
	req.SignName = "自定义签名"
	assert.Equal(t, "自定义签名", req.WithDefaults(cc).SignName)
	assert.Equal(t, "13800138000,13900139000", Request{Receivers: []string{"13800138000", "13900139000"}}.JoinReceivers(","))
}
