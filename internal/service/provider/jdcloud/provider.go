package jdcloud

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/gofrs/uuid"
)

const (
	Vendor        = "jdcloud"
	defaultRegion = "cn-north-1"
	algorithm     = "JDCLOUD2-HMAC-SHA256"
	dateLayout    = "20060102T150405Z"

	headerDate  = "X-Jdcloud-Date"
	headerNonce = "X-Jdcloud-Nonce"

	reportDelivered = "DELIVRD"
)

var (
	_ provider.Provider = (*Provider)(nil)

	// statusTable 京东云短信响应体中的 statusCode
	statusTable = domain.NewStatusTable(map[string]domain.Code{
		"200": domain.CodeSuccess,
		"400": domain.CodeFailure,
		"401": domain.CodeFailure,
		"403": domain.CodeFailure,
		"404": domain.CodeFailure,
		"429": domain.CodeFailure,
		"500": domain.CodeFailure,
		"503": domain.CodeFailure,
	})

	// reportTable 回执中的 status，等待回执也算查询成功
	reportTable = domain.NewStatusTable(map[string]domain.Code{
		reportDelivered: domain.CodeSuccess,
		"SENDING":       domain.CodeSuccess,
		"UNDELIV":       domain.CodeFailure,
		"REJECTD":       domain.CodeFailure,
		"EXPIRED":       domain.CodeFailure,
	})
)

// Provider 京东云短信
// 传输状态与响应体 statusCode 同时为 200 才算成功。
type Provider struct {
	provider.Unimplemented

	tr    transport.Client
	send  provider.Pipeline
	query provider.Pipeline
}

type Option func(b *builder)

// WithClock 固定签名时间，测试使用
func WithClock(now func() time.Time) Option {
	return func(b *builder) {
		b.now = now
	}
}

// WithNonce 固定随机串，测试使用
func WithNonce(nonce func() string) Option {
	return func(b *builder) {
		b.nonce = nonce
	}
}

func NewProvider(tr transport.Client, opts ...Option) *Provider {
	b := &builder{
		now: time.Now,
		nonce: func() string {
			return uuid.Must(uuid.NewV4()).String()
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return &Provider{
		tr: tr,
		send: provider.Pipeline{
			Required:      []string{domain.FieldReceivers, domain.FieldTemplateID},
			Check:         provider.CheckPhones("CN"),
			Build:         b.buildSend,
			Sign:          Sign,
			Parse:         parse,
			BusinessTable: statusTable,
			Decide:        provider.DecideBoth,
		},
		query: provider.Pipeline{
			Required:      []string{domain.FieldOrderID},
			Build:         b.buildQuery,
			Sign:          Sign,
			Parse:         parseReport,
			BusinessTable: reportTable,
			Decide:        provider.DecideBoth,
		},
	}
}

// RequiredFields 注册时校验的渠道配置
func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextEndpoint, domain.ContextAppID}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationSend, domain.OperationQuery}
}

func (p *Provider) Send(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.send.Execute(ctx, p.tr, cc, req)
}

// Query 按 requestId 查询发送回执
func (p *Provider) Query(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.query.Execute(ctx, p.tr, cc, req)
}

type builder struct {
	now   func() time.Time
	nonce func() string
}

type sendBody struct {
	AppID      string   `json:"appId"`
	TemplateID string   `json:"templateId"`
	SignID     string   `json:"signId,omitempty"`
	PhoneList  []string `json:"phoneList"`
	Params     []string `json:"params,omitempty"`
}

func (b *builder) buildSend(cc domain.ChannelContext, req domain.Request) (transport.Request, error) {
	body, err := json.Marshal(sendBody{
		AppID:      cc.AppID,
		TemplateID: req.TemplateID,
		SignID:     req.SignName,
		PhoneList:  req.Receivers,
		Params:     req.Params,
	})
	if err != nil {
		return transport.Request{}, err
	}
	return b.newRequest(http.MethodPost, regionURL(cc)+"/batchSend", body), nil
}

func (b *builder) buildQuery(cc domain.ChannelContext, req domain.Request) (transport.Request, error) {
	q := url.Values{}
	q.Set("appId", cc.AppID)
	q.Set("requestId", req.OrderID)
	return b.newRequest(http.MethodGet, regionURL(cc)+"/statusReport?"+q.Encode(), nil), nil
}

func (b *builder) newRequest(method, u string, body []byte) transport.Request {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set(headerDate, b.now().UTC().Format(dateLayout))
	header.Set(headerNonce, b.nonce())
	return transport.Request{
		Method: method,
		URL:    u,
		Header: header,
		Body:   body,
	}
}

func regionURL(cc domain.ChannelContext) string {
	region := cc.Region
	if region == "" {
		region = defaultRegion
	}
	return cc.RenderEndpoint(nil) + "/v1/regions/" + region
}

// Sign 计算 Authorization 头
// 时间与随机串已经在构造阶段写入请求头，因此相同输入总是得到相同签名。
func Sign(cc domain.ChannelContext, req transport.Request) (transport.Request, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return transport.Request{}, err
	}
	date := req.Header.Get(headerDate)
	if len(date) < len("20060102") {
		return transport.Request{}, fmt.Errorf("缺少 %s", headerDate)
	}
	bodyHash := sha256.Sum256(req.Body)
	canonical := strings.Join([]string{
		req.Method,
		u.EscapedPath(),
		u.RawQuery,
		"content-type:" + req.Header.Get("Content-Type"),
		"host:" + u.Host,
		strings.ToLower(headerDate) + ":" + date,
		strings.ToLower(headerNonce) + ":" + req.Header.Get(headerNonce),
		hex.EncodeToString(bodyHash[:]),
	}, "\n")

	mac := hmac.New(sha256.New, []byte(cc.Secret))
	mac.Write([]byte(canonical))
	signature := hex.EncodeToString(mac.Sum(nil))

	region := cc.Region
	if region == "" {
		region = defaultRegion
	}
	scope := strings.Join([]string{date[:8], region, "sms", "jdcloud2_request"}, "/")
	req.Header.Set("Authorization", fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=content-type;host;%s;%s, Signature=%s",
		algorithm, cc.AccessKeyID, scope, strings.ToLower(headerDate), strings.ToLower(headerNonce), signature))
	return req, nil
}

type response struct {
	RequestID  string          `json:"requestId"`
	StatusCode *int            `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func parse(resp transport.Response) (provider.Result, error) {
	var r response
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return provider.Result{}, err
	}
	if r.StatusCode == nil {
		return provider.Result{}, fmt.Errorf("响应缺少 statusCode")
	}
	return provider.Result{
		Status: strconv.Itoa(*r.StatusCode),
		Msg:    r.Message,
		Data:   r,
	}, nil
}

type report struct {
	PhoneNum  string `json:"phoneNum"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode,omitempty"`
}

type reportResponse struct {
	RequestID  string   `json:"requestId"`
	StatusCode *int     `json:"statusCode"`
	Message    string   `json:"message"`
	Data       []report `json:"data"`
}

// parseReport 全部号码送达才是 DELIVRD，否则取第一个未送达号码的状态
// 接口本身失败时返回 statusCode，回执表里没有这些值，一律失败。
func parseReport(resp transport.Response) (provider.Result, error) {
	var r reportResponse
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return provider.Result{}, err
	}
	if r.StatusCode == nil {
		return provider.Result{}, fmt.Errorf("响应缺少 statusCode")
	}
	if *r.StatusCode != http.StatusOK {
		return provider.Result{Status: strconv.Itoa(*r.StatusCode), Msg: r.Message, Data: r}, nil
	}
	if len(r.Data) == 0 {
		return provider.Result{Msg: "没有回执", Data: r}, nil
	}
	for _, item := range r.Data {
		if item.Status != reportDelivered {
			return provider.Result{Status: item.Status, Msg: item.PhoneNum + ": " + item.ErrorCode, Data: r}, nil
		}
	}
	return provider.Result{Status: reportDelivered, Msg: r.Message, Data: r}, nil
}
