package twilio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
)

const (
	Vendor          = "twilio"
	defaultEndpoint = "https://api.twilio.com/2010-04-01/Accounts/{accountSid}"
)

var (
	_ provider.Provider = (*Provider)(nil)

	// statusTable Twilio Message.status
	statusTable = domain.NewStatusTable(map[string]domain.Code{
		"accepted":    domain.CodeSuccess,
		"scheduled":   domain.CodeSuccess,
		"queued":      domain.CodeSuccess,
		"sending":     domain.CodeSuccess,
		"sent":        domain.CodeSuccess,
		"delivered":   domain.CodeSuccess,
		"read":        domain.CodeSuccess,
		"failed":      domain.CodeFailure,
		"undelivered": domain.CodeFailure,
		"canceled":    domain.CodeFailure,
	})
)

// Provider Twilio 短信
// AppID 为 Account SID，Secret 为 Auth Token，SignName 为发送号码。
// Twilio 每次请求只能发给一个号码，多个接收者逐个发送，任意一个失败即整体失败。
type Provider struct {
	provider.Unimplemented

	tr    transport.Client
	send  provider.Pipeline
	query provider.Pipeline
}

func NewProvider(tr transport.Client) *Provider {
	return &Provider{
		tr: tr,
		send: provider.Pipeline{
			Required:      []string{domain.FieldReceivers, domain.FieldSignName},
			Check:         checkSend,
			Build:         buildSend,
			Sign:          Sign,
			Parse:         parse,
			BusinessTable: statusTable,
			Decide:        provider.DecideBoth,
		},
		query: provider.Pipeline{
			Required:      []string{domain.FieldOrderID},
			Build:         buildQuery,
			Sign:          Sign,
			Parse:         parse,
			BusinessTable: statusTable,
			Decide:        provider.DecideBoth,
		},
	}
}

func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextAppID, domain.ContextSecret}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationSend, domain.OperationQuery}
}

func (p *Provider) Send(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	if len(req.Receivers) <= 1 {
		return p.send.Execute(ctx, p.tr, cc, req)
	}
	// 全部号码校验通过后才开始发送
	if _, err := p.send.Validate(cc, req); err != nil {
		return domain.NewFailure("", err.Error())
	}
	sids := make([]string, 0, len(req.Receivers))
	for _, receiver := range req.Receivers {
		single := req
		single.Receivers = []string{receiver}
		msg := p.send.Execute(ctx, p.tr, cc, single)
		if !msg.IsSuccess() {
			return msg
		}
		if r, ok := msg.Data.(response); ok {
			sids = append(sids, r.SID)
		}
	}
	return domain.NewSuccess("queued", "全部号码已受理", sids)
}

// Query 按 Message SID 查询
func (p *Provider) Query(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.query.Execute(ctx, p.tr, cc, req)
}

func checkSend(req domain.Request) error {
	if req.Content == "" {
		if err := req.Validate(domain.FieldTemplateID); err != nil {
			return err
		}
	}
	return provider.CheckPhones("US")(req)
}

func baseURL(cc domain.ChannelContext) string {
	endpoint := cc.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return cc.WithOverride(domain.Override{Endpoint: endpoint}).
		RenderEndpoint(map[string]string{"accountSid": cc.AppID})
}

func buildSend(cc domain.ChannelContext, req domain.Request) (transport.Request, error) {
	form := url.Values{}
	form.Set("To", provider.E164(req.Receivers[0], "US"))
	form.Set("From", req.SignName)
	if req.Content != "" {
		form.Set("Body", req.Content)
	} else {
		// 使用内容模板
		form.Set("ContentSid", req.TemplateID)
		if len(req.NamedParams) > 0 {
			vars, err := json.Marshal(req.NamedParams)
			if err != nil {
				return transport.Request{}, err
			}
			form.Set("ContentVariables", string(vars))
		}
	}
	if req.SubAccount != "" {
		form.Set("MessagingServiceSid", req.SubAccount)
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	return transport.Request{
		Method: http.MethodPost,
		URL:    baseURL(cc) + "/Messages.json",
		Header: header,
		Body:   []byte(form.Encode()),
	}, nil
}

func buildQuery(cc domain.ChannelContext, req domain.Request) (transport.Request, error) {
	return transport.Request{
		Method: http.MethodGet,
		URL:    baseURL(cc) + "/Messages/" + url.PathEscape(req.OrderID) + ".json",
		Header: make(http.Header),
	}, nil
}

// Sign HTTP Basic 认证
func Sign(cc domain.ChannelContext, req transport.Request) (transport.Request, error) {
	token := base64.StdEncoding.EncodeToString([]byte(cc.AppID + ":" + cc.Secret))
	req.Header.Set("Authorization", "Basic "+token)
	return req, nil
}

type response struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// apiError 4xx/5xx 时的响应体，status 字段是数字
type apiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

func parse(resp transport.Response) (provider.Result, error) {
	if resp.StatusCode >= http.StatusBadRequest {
		var e apiError
		if err := json.Unmarshal(resp.Body, &e); err != nil {
			return provider.Result{}, err
		}
		return provider.Result{
			Status: strconv.Itoa(e.Code),
			Msg:    e.Message,
			Data:   e,
		}, nil
	}
	var r response
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return provider.Result{}, err
	}
	return provider.Result{
		Status: strings.ToLower(r.Status),
		Msg:    r.ErrorMessage,
		Data:   r,
	}, nil
}
