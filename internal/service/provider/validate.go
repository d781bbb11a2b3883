package provider

import (
	"fmt"
	"net/mail"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"github.com/nyaruka/phonenumbers"
)

// CheckPhones 校验接收者都是可能的手机号，不带国家码的号码按 defaultRegion 解析
func CheckPhones(defaultRegion string) func(domain.Request) error {
	return func(req domain.Request) error {
		for _, r := range req.Receivers {
			num, err := phonenumbers.Parse(r, defaultRegion)
			if err != nil {
				return fmt.Errorf("%w: 手机号 %q: %w", errs.ErrInvalidParameter, r, err)
			}
			if !phonenumbers.IsPossibleNumber(num) {
				return fmt.Errorf("%w: 手机号 %q 长度非法", errs.ErrInvalidParameter, r)
			}
		}
		return nil
	}
}

// E164 把手机号格式化为 +8613800138000 的形式
func E164(phone, defaultRegion string) string {
	num, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return phone
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// CheckEmails 校验接收者都是合法的邮件地址
func CheckEmails(req domain.Request) error {
	for _, r := range req.Receivers {
		if _, err := mail.ParseAddress(r); err != nil {
			return fmt.Errorf("%w: 邮箱 %q: %w", errs.ErrInvalidParameter, r, err)
		}
	}
	return nil
}
