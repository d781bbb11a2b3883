package aliyun

import (
	"gitee.com/flycash/vendor-dispatch/internal/domain"
	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	"github.com/alibabacloud-go/tea/tea"
)

const defaultEndpoint = "dysmsapi.aliyuncs.com"

// Client 阿里云短信 SDK 中用到的方法，*dysmsapi.Client 实现了该接口
//
//go:generate mockgen -source=./client.go -destination=./mocks/client.mock.go -package=aliyunmocks Client
type Client interface {
	SendSms(request *dysmsapi.SendSmsRequest) (*dysmsapi.SendSmsResponse, error)
	QuerySendDetails(request *dysmsapi.QuerySendDetailsRequest) (*dysmsapi.QuerySendDetailsResponse, error)
}

var _ Client = (*dysmsapi.Client)(nil)

// NewClient 根据渠道配置创建阿里云短信客户端
func NewClient(cc domain.ChannelContext) (Client, error) {
	endpoint := cc.RenderEndpoint(nil)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	config := &openapi.Config{
		AccessKeyId:     tea.String(cc.AccessKeyID),
		AccessKeySecret: tea.String(cc.Secret),
		RegionId:        tea.String(cc.Region),
		Endpoint:        tea.String(endpoint),
	}
	return dysmsapi.NewClient(config)
}
