package aliyun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	"github.com/alibabacloud-go/tea/tea"
)

const (
	Vendor = "aliyun"
	codeOK = "OK"

	queryPageSize = 10
	sendDateFmt   = "20060102"
)

var (
	_ provider.Provider = (*Provider)(nil)

	sendTable = domain.NewStatusTable(map[string]domain.Code{
		codeOK:                            domain.CodeSuccess,
		"isv.BUSINESS_LIMIT_CONTROL":      domain.CodeFailure,
		"isv.MOBILE_NUMBER_ILLEGAL":       domain.CodeFailure,
		"isv.SMS_SIGNATURE_ILLEGAL":       domain.CodeFailure,
		"isv.SMS_TEMPLATE_ILLEGAL":        domain.CodeFailure,
		"isv.TEMPLATE_MISSING_PARAMETERS": domain.CodeFailure,
		"isv.AMOUNT_NOT_ENOUGH":           domain.CodeFailure,
		"isv.DAY_LIMIT_CONTROL":           domain.CodeFailure,
		"isp.SYSTEM_ERROR":                domain.CodeFailure,
	})

	// queryTable SmsSendDetailDTO.SendStatus：1 等待回执，2 发送失败，3 发送成功
	queryTable = domain.NewStatusTable(map[string]domain.Code{
		"1": domain.CodeSuccess,
		"2": domain.CodeFailure,
		"3": domain.CodeSuccess,
	})
)

// Provider 阿里云短信
// 阿里云不返回每个手机号的状态，只有整体状态，任意失败即整体失败。
type Provider struct {
	provider.Unimplemented

	client Client
	now    func() time.Time
}

func NewProvider(client Client) *Provider {
	return &Provider{
		client: client,
		now:    time.Now,
	}
}

func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextAccessKeyID, domain.ContextSecret}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationSend, domain.OperationQuery}
}

// Send 发送短信
func (p *Provider) Send(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	req = req.WithDefaults(cc)
	if err := req.Validate(domain.FieldReceivers, domain.FieldTemplateID, domain.FieldSignName); err != nil {
		return domain.NewFailure("", err.Error())
	}
	if err := provider.CheckPhones("CN")(req); err != nil {
		return domain.NewFailure("", err.Error())
	}

	templateParam := ""
	if len(req.NamedParams) > 0 {
		jsonParams, err := json.Marshal(req.NamedParams)
		if err != nil {
			return domain.NewFailure("", fmt.Sprintf("%s: %s", errs.ErrInvalidParameter.Error(), err.Error()))
		}
		templateParam = string(jsonParams)
	}

	request := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(phoneNumbers(req.Receivers)),
		SignName:      tea.String(req.SignName),
		TemplateCode:  tea.String(req.TemplateID),
		TemplateParam: tea.String(templateParam),
	}
	if req.SubAccount != "" {
		request.OutId = tea.String(req.SubAccount)
	}

	response, err := p.client.SendSms(request)
	if err != nil {
		return sdkFailure(err)
	}
	if response == nil || response.Body == nil || response.Body.Code == nil {
		return domain.NewFailure("", errs.ErrMalformedResponse.Error())
	}

	body := response.Body
	return provider.Normalize(sendTable, tea.StringValue(body.Code), tea.StringValue(body.Message), map[string]string{
		"bizId":     tea.StringValue(body.BizId),
		"requestId": tea.StringValue(body.RequestId),
	})
}

// Query 按发送回执ID查询单个手机号的发送状态
func (p *Provider) Query(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	req = req.WithDefaults(cc)
	if err := req.Validate(domain.FieldReceivers, domain.FieldOrderID); err != nil {
		return domain.NewFailure("", err.Error())
	}
	sentAt := req.SentAt
	if sentAt.IsZero() {
		sentAt = p.now()
	}

	response, err := p.client.QuerySendDetails(&dysmsapi.QuerySendDetailsRequest{
		PhoneNumber: tea.String(phoneNumbers(req.Receivers[:1])),
		BizId:       tea.String(req.OrderID),
		SendDate:    tea.String(sentAt.Format(sendDateFmt)),
		PageSize:    tea.Int64(queryPageSize),
		CurrentPage: tea.Int64(1),
	})
	if err != nil {
		return sdkFailure(err)
	}
	if response == nil || response.Body == nil || response.Body.Code == nil {
		return domain.NewFailure("", errs.ErrMalformedResponse.Error())
	}
	body := response.Body
	code := tea.StringValue(body.Code)
	if code != codeOK {
		return provider.Normalize(sendTable, code, tea.StringValue(body.Message), nil)
	}
	if body.SmsSendDetailDTOs == nil || len(body.SmsSendDetailDTOs.SmsSendDetailDTO) == 0 {
		return domain.NewFailure(code, "未找到发送记录")
	}

	detail := body.SmsSendDetailDTOs.SmsSendDetailDTO[0]
	status := strconv.FormatInt(tea.Int64Value(detail.SendStatus), 10)
	return provider.Normalize(queryTable, status, tea.StringValue(detail.ErrCode), map[string]string{
		"requestId": tea.StringValue(body.RequestId),
		"content":   tea.StringValue(detail.Content),
	})
}

// phoneNumbers 阿里云要求国内号码不带 +86，多个号码用逗号分隔
func phoneNumbers(receivers []string) string {
	phones := make([]string, 0, len(receivers))
	for _, phone := range receivers {
		phone = strings.TrimPrefix(phone, "+86")
		phones = append(phones, strings.TrimPrefix(phone, "+"))
	}
	return strings.Join(phones, ",")
}

func sdkFailure(err error) domain.Message {
	var sdkErr *tea.SDKError
	if errors.As(err, &sdkErr) {
		return domain.NewFailure(tea.StringValue(sdkErr.Code), tea.StringValue(sdkErr.Message))
	}
	return provider.Failure(err)
}
