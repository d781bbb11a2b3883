package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"github.com/go-playground/validator/v10"
)

// Request 单次调用的请求实体，由调用方构造，调用结束后丢弃
type Request struct {
	Receivers   []string          `json:"receivers" validate:"required,min=1,dive,required"` // 手机号/邮箱/用户ID
	TemplateID  string            `json:"templateId" validate:"required"`
	Params      []string          `json:"params,omitempty"`      // 按顺序替换的模板参数
	NamedParams map[string]string `json:"namedParams,omitempty"` // 按名称替换的模板参数
	SignName    string            `json:"signName,omitempty" validate:"required"`
	SubAccount  string            `json:"subAccount,omitempty"`

	// 查询与支付相关
	OrderID  string    `json:"orderId,omitempty" validate:"required"` // 订单号/回执ID/消息ID
	RefundID string    `json:"refundId,omitempty"`
	Amount   int64     `json:"amount,omitempty" validate:"gt=0"`
	Currency string    `json:"currency,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	SentAt   time.Time `json:"sentAt,omitempty"`

	// 邮件与消息正文
	Subject string `json:"subject,omitempty" validate:"required"`
	Content string `json:"content,omitempty" validate:"required"`
}

// 供应商声明必填字段时使用的名称，与 Request 的字段名一致
const (
	FieldReceivers  = "Receivers"
	FieldTemplateID = "TemplateID"
	FieldSignName   = "SignName"
	FieldOrderID    = "OrderID"
	FieldAmount     = "Amount"
	FieldSubject    = "Subject"
	FieldContent    = "Content"
)

// WithDefaults 用渠道配置补全模版与签名，返回深拷贝
func (r Request) WithDefaults(c ChannelContext) Request {
	res := r
	res.Receivers = append([]string(nil), r.Receivers...)
	res.Params = append([]string(nil), r.Params...)
	if r.NamedParams != nil {
		res.NamedParams = cloneMap(r.NamedParams)
	}
	if res.TemplateID == "" {
		res.TemplateID = c.DefaultTemplateID
	}
	if res.SignName == "" {
		res.SignName = c.SignName
	}
	return res
}

// Validate 只校验 fields 中列出的字段
func (r Request) Validate(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	err := validate.StructPartial(r, fields...)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		names := make([]string, 0, len(verrs))
		for _, e := range verrs {
			names = append(names, e.Field())
		}
		return fmt.Errorf("%w: 缺少或非法字段 %s", errs.ErrInvalidParameter, strings.Join(names, ","))
	}
	return fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
}

// JoinReceivers 将多个接收者拼成供应商要求的分隔字符串
func (r Request) JoinReceivers(sep string) string {
	return strings.Join(r.Receivers, sep)
}
