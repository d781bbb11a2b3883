package stripe

import (
	"context"
	"errors"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	stripego "github.com/stripe/stripe-go/v82"
)

const Vendor = "stripe"

var (
	_ provider.Provider = (*Provider)(nil)

	// queryTable PaymentIntent.status，只有 succeeded 表示支付完成
	queryTable = domain.NewStatusTable(map[string]domain.Code{
		string(stripego.PaymentIntentStatusSucceeded):             domain.CodeSuccess,
		string(stripego.PaymentIntentStatusProcessing):            domain.CodeFailure,
		string(stripego.PaymentIntentStatusRequiresPaymentMethod): domain.CodeFailure,
		string(stripego.PaymentIntentStatusRequiresConfirmation):  domain.CodeFailure,
		string(stripego.PaymentIntentStatusRequiresAction):        domain.CodeFailure,
		string(stripego.PaymentIntentStatusRequiresCapture):       domain.CodeFailure,
		string(stripego.PaymentIntentStatusCanceled):              domain.CodeFailure,
	})

	closeTable = domain.NewStatusTable(map[string]domain.Code{
		string(stripego.PaymentIntentStatusCanceled): domain.CodeSuccess,
	})

	refundTable = domain.NewStatusTable(map[string]domain.Code{
		string(stripego.RefundStatusSucceeded):      domain.CodeSuccess,
		string(stripego.RefundStatusPending):        domain.CodeSuccess,
		string(stripego.RefundStatusRequiresAction): domain.CodeFailure,
		string(stripego.RefundStatusFailed):         domain.CodeFailure,
		string(stripego.RefundStatusCanceled):       domain.CodeFailure,
	})

	refundReasons = map[string]bool{
		string(stripego.RefundReasonDuplicate):           true,
		string(stripego.RefundReasonFraudulent):          true,
		string(stripego.RefundReasonRequestedByCustomer): true,
	}

	cancelReasons = map[string]bool{
		"abandoned":             true,
		"duplicate":             true,
		"fraudulent":            true,
		"requested_by_customer": true,
	}
)

// Provider Stripe 支付
// OrderID 为 PaymentIntent ID，不支持发送消息。
type Provider struct {
	provider.Unimplemented

	client Client
}

func NewProvider(client Client) *Provider {
	return &Provider{client: client}
}

func RequiredFields() []domain.ContextField {
	return []domain.ContextField{domain.ContextSecret}
}

func (p *Provider) Name() string {
	return Vendor
}

func (p *Provider) Operations() []domain.Operation {
	return []domain.Operation{domain.OperationQuery, domain.OperationRefund, domain.OperationClose}
}

func (p *Provider) Query(ctx context.Context, _ domain.ChannelContext, req domain.Request) domain.Message {
	if err := req.Validate(domain.FieldOrderID); err != nil {
		return domain.NewFailure("", err.Error())
	}
	intent, err := p.client.GetPaymentIntent(ctx, req.OrderID)
	if err != nil {
		return sdkFailure(err)
	}
	return provider.Normalize(queryTable, string(intent.Status), "", intentData(intent))
}

func (p *Provider) Refund(ctx context.Context, _ domain.ChannelContext, req domain.Request) domain.Message {
	if err := req.Validate(domain.FieldOrderID, domain.FieldAmount); err != nil {
		return domain.NewFailure("", err.Error())
	}
	params := &stripego.RefundParams{
		PaymentIntent: stripego.String(req.OrderID),
		Amount:        stripego.Int64(req.Amount),
	}
	if refundReasons[req.Reason] {
		params.Reason = stripego.String(req.Reason)
	} else if req.Reason != "" {
		params.AddMetadata("reason", req.Reason)
	}
	if req.RefundID != "" {
		params.SetIdempotencyKey(req.RefundID)
	}

	refund, err := p.client.CreateRefund(ctx, params)
	if err != nil {
		return sdkFailure(err)
	}
	msg := ""
	if refund.FailureReason != "" {
		msg = string(refund.FailureReason)
	}
	return provider.Normalize(refundTable, string(refund.Status), msg, map[string]any{
		"refundId": refund.ID,
		"amount":   refund.Amount,
		"currency": string(refund.Currency),
	})
}

func (p *Provider) Close(ctx context.Context, _ domain.ChannelContext, req domain.Request) domain.Message {
	if err := req.Validate(domain.FieldOrderID); err != nil {
		return domain.NewFailure("", err.Error())
	}
	reason := ""
	if cancelReasons[req.Reason] {
		reason = req.Reason
	}
	intent, err := p.client.CancelPaymentIntent(ctx, req.OrderID, reason)
	if err != nil {
		return sdkFailure(err)
	}
	return provider.Normalize(closeTable, string(intent.Status), "", intentData(intent))
}

func intentData(intent *stripego.PaymentIntent) map[string]any {
	return map[string]any{
		"id":       intent.ID,
		"amount":   intent.Amount,
		"currency": string(intent.Currency),
	}
}

func sdkFailure(err error) domain.Message {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) {
		return domain.NewFailure(string(stripeErr.Code), stripeErr.Msg)
	}
	return provider.Failure(err)
}
