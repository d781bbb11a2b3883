package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter      = errors.New("参数错误")
	ErrInvalidChannelContext = errors.New("渠道配置非法")
	ErrUnknownVendor         = errors.New("未支持的供应商")

	ErrChannelNotRegistered = errors.New("渠道未注册")
	ErrChannelDuplicate     = errors.New("渠道重复注册")
	ErrRegistrySealed       = errors.New("注册表已封存，禁止注册")
	ErrRegistryNotSealed    = errors.New("注册表尚未封存，禁止解析")

	ErrTransportFailed   = errors.New("调用供应商失败")
	ErrMalformedResponse = errors.New("供应商响应格式错误")

	ErrChannelConfigNotFound = errors.New("渠道配置不存在")
)
