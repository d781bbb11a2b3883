package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Capability 渠道能力
type Capability string

const (
	CapabilitySMS     Capability = "sms"     // 短信
	CapabilityEmail   Capability = "email"   // 邮件
	CapabilityPayment Capability = "payment" // 支付
	CapabilityIM      Capability = "im"      // 即时消息
)

// Operation 供应商可以实现的操作
type Operation string

const (
	OperationSend   Operation = "send"
	OperationQuery  Operation = "query"
	OperationRefund Operation = "refund"
	OperationClose  Operation = "close"
)

func (o Operation) IsValid() bool {
	switch o {
	case OperationSend, OperationQuery, OperationRefund, OperationClose:
		return true
	default:
		return false
	}
}

// ChannelKey 渠道标识，供应商+能力，例如 jdcloud-sms
type ChannelKey string

func NewChannelKey(vendor string, capability Capability) ChannelKey {
	return ChannelKey(vendor + "-" + string(capability))
}

// ParseChannelKey 按最后一个 "-" 拆分供应商与能力
func ParseChannelKey(s string) (ChannelKey, error) {
	idx := strings.LastIndex(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return "", fmt.Errorf("%w: 渠道标识 = %q", errs.ErrInvalidParameter, s)
	}
	return ChannelKey(s), nil
}

func (k ChannelKey) Vendor() string {
	s := string(k)
	idx := strings.LastIndex(s, "-")
	if idx < 0 {
		return s
	}
	return s[:idx]
}

func (k ChannelKey) Capability() Capability {
	s := string(k)
	idx := strings.LastIndex(s, "-")
	if idx < 0 {
		return ""
	}
	return Capability(s[idx+1:])
}

func (k ChannelKey) String() string {
	return string(k)
}

// ChannelConfig 配置源提供的原始渠道配置
type ChannelConfig struct {
	Vendor            string            `yaml:"vendor" json:"vendor" validate:"required"`
	Capability        Capability        `yaml:"capability" json:"capability" validate:"required,oneof=sms email payment im"`
	Endpoint          string            `yaml:"endpoint" json:"endpoint"`
	AppID             string            `yaml:"appId" json:"appId"`
	AccessKeyID       string            `yaml:"accessKeyId" json:"accessKeyId"`
	Secret            string            `yaml:"secret" json:"secret"`
	Region            string            `yaml:"region" json:"region"`
	SignName          string            `yaml:"signName" json:"signName"`
	DefaultTemplateID string            `yaml:"defaultTemplateId" json:"defaultTemplateId"`
	Extra             map[string]string `yaml:"extra" json:"extra"`
}

func (c ChannelConfig) Key() ChannelKey {
	return NewChannelKey(c.Vendor, c.Capability)
}

// ContextField ChannelContext 中可以被供应商声明为必填的字段
type ContextField string

const (
	ContextEndpoint    ContextField = "endpoint"
	ContextAppID       ContextField = "appId"
	ContextAccessKeyID ContextField = "accessKeyId"
	ContextSecret      ContextField = "secret"
	ContextRegion      ContextField = "region"
	ContextSignName    ContextField = "signName"
)

// ChannelContext 渠道级别的不可变配置：凭证、入口地址、签名材料
// 只能通过 NewChannelContext 构造，构造后不再修改，并发发送之间按值共享。
// 需要变化时使用 WithOverride 得到一份新的副本。
type ChannelContext struct {
	Vendor            string
	Capability        Capability
	Endpoint          string // 可以包含 {region} 之类的占位符
	AppID             string
	AccessKeyID       string
	Secret            string
	Region            string
	SignName          string
	DefaultTemplateID string

	extra map[string]string
}

func NewChannelContext(cfg ChannelConfig) (ChannelContext, error) {
	if err := validate.Struct(cfg); err != nil {
		return ChannelContext{}, fmt.Errorf("%w: %w", errs.ErrInvalidChannelContext, err)
	}
	return ChannelContext{
		Vendor:            cfg.Vendor,
		Capability:        cfg.Capability,
		Endpoint:          strings.TrimRight(cfg.Endpoint, "/"),
		AppID:             cfg.AppID,
		AccessKeyID:       cfg.AccessKeyID,
		Secret:            cfg.Secret,
		Region:            cfg.Region,
		SignName:          cfg.SignName,
		DefaultTemplateID: cfg.DefaultTemplateID,
		extra:             cloneMap(cfg.Extra),
	}, nil
}

func (c ChannelContext) Key() ChannelKey {
	return NewChannelKey(c.Vendor, c.Capability)
}

// Extra 读取扩展配置
func (c ChannelContext) Extra(key string) string {
	return c.extra[key]
}

// Require 校验供应商要求的必填字段
func (c ChannelContext) Require(fields ...ContextField) error {
	for _, f := range fields {
		if c.field(f) == "" {
			return fmt.Errorf("%w: %s 缺少 %s", errs.ErrInvalidChannelContext, c.Key(), f)
		}
	}
	return nil
}

func (c ChannelContext) field(f ContextField) string {
	switch f {
	case ContextEndpoint:
		return c.Endpoint
	case ContextAppID:
		return c.AppID
	case ContextAccessKeyID:
		return c.AccessKeyID
	case ContextSecret:
		return c.Secret
	case ContextRegion:
		return c.Region
	case ContextSignName:
		return c.SignName
	default:
		return ""
	}
}

// Override 单次调用的覆盖项，空值表示不覆盖
type Override struct {
	Endpoint   string            `json:"endpoint,omitempty"`
	SignName   string            `json:"signName,omitempty"`
	TemplateID string            `json:"templateId,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

func (o Override) IsZero() bool {
	return o.Endpoint == "" && o.SignName == "" && o.TemplateID == "" && len(o.Extra) == 0
}

// WithOverride 在副本上合并覆盖项，c 本身不会被修改
func (c ChannelContext) WithOverride(o Override) ChannelContext {
	if o.IsZero() {
		return c
	}
	res := c
	if o.Endpoint != "" {
		res.Endpoint = strings.TrimRight(o.Endpoint, "/")
	}
	if o.SignName != "" {
		res.SignName = o.SignName
	}
	if o.TemplateID != "" {
		res.DefaultTemplateID = o.TemplateID
	}
	if len(o.Extra) > 0 {
		res.extra = cloneMap(c.extra)
		for k, v := range o.Extra {
			res.extra[k] = v
		}
	}
	return res
}

// RenderEndpoint 替换入口地址中的占位符
// 内置 {appId} {region} {accessKeyId}，vars 中的同名变量优先
func (c ChannelContext) RenderEndpoint(vars map[string]string) string {
	pairs := make([]string, 0, 2*(len(vars)+3))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	pairs = append(pairs,
		"{appId}", c.AppID,
		"{region}", c.Region,
		"{accessKeyId}", c.AccessKeyID,
	)
	return strings.NewReplacer(pairs...).Replace(c.Endpoint)
}

func cloneMap(m map[string]string) map[string]string {
	res := make(map[string]string, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}
