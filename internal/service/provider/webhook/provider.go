package webhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/jwt"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/transport"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	jwtv4 "github.com/golang-jwt/jwt/v4"
)

const (
	Vendor = "webhook"

	HeaderTimestamp = "X-Webhook-Timestamp"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 把消息以 JSON 推送到自定义地址
// 请求头携带 HS256 签名的 Bearer 令牌，body 的摘要写在 bh 声明中。
// 只根据 HTTP 状态码判断结果。
type Provider struct {
	provider.Unimplemented

	tr   transport.Client
	send provider.Pipeline
}

func NewProvider(tr transport.Client) *Provider {
	return newProvider(tr, time.Now)
}

func newProvider(tr transport.Client, now func() time.Time) *Provider {
	return &Provider{
		tr: tr,
		send: provider.Pipeline{
			Required: []string{domain.FieldReceivers},
			Build: func(cc domain.ChannelContext, req domain.Request) (transport.Request, error) {
				return buildSend(cc, req, now())
			},
			Sign:   Sign,
			Decide: provider.DecideTransport,
		},
	}
}

func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextEndpoint, domain.ContextSecret}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationSend}
}

func (p *Provider) Send(ctx context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	return p.send.Execute(ctx, p.tr, cc, req)
}

type payload struct {
	Channel     string            `json:"channel"`
	Receivers   []string          `json:"receivers"`
	TemplateID  string            `json:"templateId,omitempty"`
	Params      []string          `json:"params,omitempty"`
	NamedParams map[string]string `json:"namedParams,omitempty"`
	SignName    string            `json:"signName,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	Content     string            `json:"content,omitempty"`
	OrderID     string            `json:"orderId,omitempty"`
}

func buildSend(cc domain.ChannelContext, req domain.Request, now time.Time) (transport.Request, error) {
	body, err := json.Marshal(payload{
		Channel:     cc.Key().String(),
		Receivers:   req.Receivers,
		TemplateID:  req.TemplateID,
		Params:      req.Params,
		NamedParams: req.NamedParams,
		SignName:    req.SignName,
		Subject:     req.Subject,
		Content:     req.Content,
		OrderID:     req.OrderID,
	})
	if err != nil {
		return transport.Request{}, err
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set(HeaderTimestamp, strconv.FormatInt(now.Unix(), 10))
	return transport.Request{
		Method: http.MethodPost,
		URL:    cc.RenderEndpoint(nil),
		Header: header,
		Body:   body,
	}, nil
}

// Sign 签发时间取自构造阶段写入的时间戳
func Sign(cc domain.ChannelContext, req transport.Request) (transport.Request, error) {
	ts, err := strconv.ParseInt(req.Header.Get(HeaderTimestamp), 10, 64)
	if err != nil {
		return transport.Request{}, fmt.Errorf("缺少 %s: %w", HeaderTimestamp, err)
	}
	bodyHash := sha256.Sum256(req.Body)
	claims := jwtv4.MapClaims{
		"bh": hex.EncodeToString(bodyHash[:]),
	}
	if cc.AppID != "" {
		claims["sub"] = cc.AppID
	}
	token, err := jwt.NewAuth(cc.Secret).Encode(time.Unix(ts, 0), claims)
	if err != nil {
		return transport.Request{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}
