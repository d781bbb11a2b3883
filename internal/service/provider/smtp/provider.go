package smtp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strconv"
	"strings"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"gopkg.in/gomail.v2"
)

const (
	Vendor = "smtp"

	codeOK             = "250"
	defaultContentType = "text/plain"
	extraContentType   = "contentType"
	extraCc            = "cc"
)

var (
	_ provider.Provider = (*Provider)(nil)
	_ Sender            = (*gomail.Dialer)(nil)

	// replyTable SMTP 回复码
	replyTable = domain.NewStatusTable(map[string]domain.Code{
		codeOK: domain.CodeSuccess,
		"421":  domain.CodeFailure,
		"450":  domain.CodeFailure,
		"451":  domain.CodeFailure,
		"452":  domain.CodeFailure,
		"535":  domain.CodeFailure,
		"550":  domain.CodeFailure,
		"551":  domain.CodeFailure,
		"552":  domain.CodeFailure,
		"553":  domain.CodeFailure,
		"554":  domain.CodeFailure,
	})
)

// Sender *gomail.Dialer 实现了该接口
//
//go:generate mockgen -source=./provider.go -destination=./mocks/sender.mock.go -package=smtpmocks Sender
type Sender interface {
	DialAndSend(msgs ...*gomail.Message) error
}

// NewSender Endpoint 为 host:port，AccessKeyID 为用户名，Secret 为密码
func NewSender(cc domain.ChannelContext) (Sender, error) {
	host, portStr, err := net.SplitHostPort(cc.RenderEndpoint(nil))
	if err != nil {
		return nil, fmt.Errorf("SMTP 地址错误: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("SMTP 端口错误: %w", err)
	}
	return gomail.NewDialer(host, port, cc.AccessKeyID, cc.Secret), nil
}

// Provider 邮件
// 一封邮件发给所有接收者，SignName 为发件人地址。
type Provider struct {
	provider.Unimplemented

	sender Sender
}

func NewProvider(sender Sender) *Provider {
	return &Provider{sender: sender}
}

func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextEndpoint, domain.ContextSignName}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationSend}
}

func (p *Provider) Send(_ context.Context, cc domain.ChannelContext, req domain.Request) domain.Message {
	req = req.WithDefaults(cc)
	if err := req.Validate(domain.FieldReceivers, domain.FieldSignName, domain.FieldSubject, domain.FieldContent); err != nil {
		return domain.NewFailure("", err.Error())
	}
	if err := provider.CheckEmails(req); err != nil {
		return domain.NewFailure("", err.Error())
	}

	err := p.sender.DialAndSend(newMessage(cc, req))
	if err != nil {
		var replyErr *textproto.Error
		if errors.As(err, &replyErr) {
			return provider.Normalize(replyTable, strconv.Itoa(replyErr.Code), replyErr.Msg, nil)
		}
		return provider.Failure(err)
	}
	return provider.Normalize(replyTable, codeOK, "发送成功", map[string]any{
		"receivers": req.Receivers,
	})
}

func newMessage(cc domain.ChannelContext, req domain.Request) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", req.SignName)
	message.SetHeader("To", req.Receivers...)
	if copyTo := cc.Extra(extraCc); copyTo != "" {
		message.SetHeader("Cc", strings.Split(copyTo, ",")...)
	}
	message.SetHeader("Subject", req.Subject)

	contentType := cc.Extra(extraContentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	message.SetBody(contentType, renderContent(req.Content, req.NamedParams))
	return message
}

// renderContent 替换正文中的 {name} 占位符
func renderContent(content string, params map[string]string) string {
	if len(params) == 0 {
		return content
	}
	pairs := make([]string, 0, 2*len(params))
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
