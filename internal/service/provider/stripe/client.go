package stripe

import (
	"context"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	stripego "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Client Stripe SDK 中用到的方法
//
//go:generate mockgen -source=./client.go -destination=./mocks/client.mock.go -package=stripemocks Client
type Client interface {
	GetPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, id, reason string) (*stripego.PaymentIntent, error)
	CreateRefund(ctx context.Context, params *stripego.RefundParams) (*stripego.Refund, error)
}

type sdkClient struct {
	api *client.API
}

// NewClient Secret 为 Stripe secret key
func NewClient(cc domain.ChannelContext) Client {
	return &sdkClient{api: client.New(cc.Secret, nil)}
}

func (c *sdkClient) GetPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{}
	params.Context = ctx
	return c.api.PaymentIntents.Get(id, params)
}

func (c *sdkClient) CancelPaymentIntent(ctx context.Context, id, reason string) (*stripego.PaymentIntent, error) {
	params := &stripego.PaymentIntentCancelParams{}
	params.Context = ctx
	if reason != "" {
		params.CancellationReason = stripego.String(reason)
	}
	return c.api.PaymentIntents.Cancel(id, params)
}

func (c *sdkClient) CreateRefund(ctx context.Context, params *stripego.RefundParams) (*stripego.Refund, error) {
	params.Context = ctx
	return c.api.Refunds.New(params)
}
