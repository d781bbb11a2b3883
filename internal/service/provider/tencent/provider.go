package tencent

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	sdkerrs "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	sms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

const (
	Vendor          = "tencentcloud"
	codeOK          = "Ok"
	defaultEndpoint = "sms.tencentcloudapi.com"
	defaultRegion   = "ap-guangzhou"
)

var (
	_ provider.Provider = (*Provider)(nil)
	_ Client            = (*sms.Client)(nil)

	// statusTable SendStatus.Code，其余错误码一律视为失败
	statusTable = domain.NewStatusTable(map[string]domain.Code{
		codeOK: domain.CodeSuccess,
		"LimitExceeded.PhoneNumberDailyLimit":             domain.CodeFailure,
		"LimitExceeded.PhoneNumberThirtySecondLimit":      domain.CodeFailure,
		"InvalidParameterValue.IncorrectPhoneNumber":      domain.CodeFailure,
		"FailedOperation.SignatureIncorrectOrUnapproved":  domain.CodeFailure,
		"FailedOperation.TemplateIncorrectOrUnapproved":   domain.CodeFailure,
		"FailedOperation.InsufficientBalanceInSmsPackage": domain.CodeFailure,
	})
)

// Client 腾讯云短信 SDK 中用到的方法
//
//go:generate mockgen -source=./provider.go -destination=./mocks/client.mock.go -package=tencentmocks Client
type Client interface {
	SendSmsWithContext(ctx context.Context, request *sms.SendSmsRequest) (*sms.SendSmsResponse, error)
}

func NewClient(cc domain.ChannelContext) (Client, error) {
	credential := common.NewCredential(cc.AccessKeyID, cc.Secret)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = cc.RenderEndpoint(nil)
	if cpf.HttpProfile.Endpoint == "" {
		cpf.HttpProfile.Endpoint = defaultEndpoint
	}
	region := cc.Region
	if region == "" {
		region = defaultRegion
	}
	return sms.NewClient(credential, region, cpf)
}

// Provider 腾讯云短信
// 腾讯云按手机号返回状态，任意一个手机号被拒绝即整体失败。
type Provider struct {
	provider.Unimplemented

	client Client
}

func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextAppID, domain.ContextAccessKeyID, domain.ContextSecret}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationSend}
}

func (p *Provider) Send(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	req = req.WithDefaults(cc)
	if err := req.Validate(domain.FieldReceivers, domain.FieldTemplateID, domain.FieldSignName); err != nil {
		return domain.NewFailure("", err.Error())
	}
	if err := provider.CheckPhones("CN")(req); err != nil {
		return domain.NewFailure("", err.Error())
	}

	phones := make([]string, 0, len(req.Receivers))
	for _, r := range req.Receivers {
		phones = append(phones, provider.E164(r, "CN"))
	}

	request := sms.NewSendSmsRequest()
	request.SmsSdkAppId = common.StringPtr(cc.AppID)
	request.SignName = common.StringPtr(req.SignName)
	request.TemplateId = common.StringPtr(req.TemplateID)
	request.TemplateParamSet = common.StringPtrs(req.Params)
	request.PhoneNumberSet = common.StringPtrs(phones)
	if req.SubAccount != "" {
		request.SessionContext = common.StringPtr(req.SubAccount)
	}

	response, err := p.client.SendSmsWithContext(ctx, request)
	if err != nil {
		var sdkErr *sdkerrs.TencentCloudSDKError
		if errors.As(err, &sdkErr) {
			return domain.NewFailure(sdkErr.GetCode(), sdkErr.GetMessage())
		}
		return provider.Failure(err)
	}
	if response == nil || response.Response == nil || len(response.Response.SendStatusSet) == 0 {
		return domain.NewFailure("", errs.ErrMalformedResponse.Error())
	}

	statuses := make(map[string]string, len(response.Response.SendStatusSet))
	for _, status := range response.Response.SendStatusSet {
		if status == nil {
			continue
		}
		code := strValue(status.Code)
		statuses[strValue(status.PhoneNumber)] = code
		if statusTable.Lookup(code) != domain.CodeSuccess {
			return domain.NewMessage(domain.CodeFailure, code,
				fmt.Sprintf("%s: %s", strValue(status.PhoneNumber), strValue(status.Message)), statuses)
		}
	}
	// 每个手机号都要有回执
	for _, phone := range phones {
		if _, ok := statuses[phone]; !ok {
			return domain.NewMessage(domain.CodeFailure, "",
				fmt.Sprintf("%s: %s", phone, errs.ErrMalformedResponse.Error()), statuses)
		}
	}
	return domain.NewSuccess(codeOK, "发送成功", map[string]any{
		"requestId": strValue(response.Response.RequestId),
		"statuses":  statuses,
	})
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
