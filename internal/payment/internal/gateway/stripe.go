// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ecodeclub/storefront/config"
	"github.com/ecodeclub/storefront/internal/order"
	"github.com/ecodeclub/storefront/internal/payment/internal/domain"
	"github.com/ecodeclub/storefront/internal/pkg/money"
	"github.com/gotomicro/ego/core/elog"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

const (
	metadataOrderID = "order_id"
	defaultCurrency = "gbp"

	eventCheckoutSessionCompleted   = "checkout.session.completed"
	eventPaymentIntentSucceeded     = "payment_intent.succeeded"
	eventPaymentIntentPaymentFailed = "payment_intent.payment_failed"
)

var (
	ErrInvalidSignature = errors.New("stripe 事件签名校验失败")
	ErrInvalidPayload   = errors.New("stripe 事件内容非法")
)

// SessionAPI stripe checkout session 接口的子集
type SessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

//go:generate mockgen -source=./stripe.go -package=gatewaymocks -destination=./mocks/gateway.mock.go Gateway
type Gateway interface {
	Enabled() bool
	CreateCheckoutSession(ctx context.Context, o order.Order) (domain.CheckoutSession, error)
	// VerifyCheckoutSession 以渠道侧的会话状态为准, 不信任回跳参数
	VerifyCheckoutSession(ctx context.Context, sessionID string) (domain.Verification, error)
	// ParseWebhook 先验签再解析
	ParseWebhook(payload []byte, signature string) (domain.WebhookEvent, error)
}

type StripeGateway struct {
	sessions SessionAPI
	cfg      config.StripeConfig
	logger   *elog.Component
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	return NewStripeGatewayWithAPI(client.New(cfg.APIKey, nil).CheckoutSessions, cfg)
}

func NewStripeGatewayWithAPI(api SessionAPI, cfg config.StripeConfig) *StripeGateway {
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	cfg.Currency = strings.ToLower(cfg.Currency)
	return &StripeGateway{
		sessions: api,
		cfg:      cfg,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("payment.stripe")),
	}
}

func (g *StripeGateway) Enabled() bool {
	return g.cfg.Enabled()
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, o order.Order) (domain.CheckoutSession, error) {
	oid := strconv.FormatInt(o.ID, 10)
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL(oid)),
		Metadata:   map[string]string{metadataOrderID: oid},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			// payment_intent.* 事件也要能找到订单
			Metadata: map[string]string{metadataOrderID: oid},
		},
	}
	params.Context = ctx
	if g.cfg.CancelURL != "" {
		params.CancelURL = stripe.String(strings.ReplaceAll(g.cfg.CancelURL, "{ORDER_ID}", oid))
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(o.Items))
	for _, item := range o.Items {
		name := item.Name
		if name == "" {
			name = "SKU " + item.SKU
		}
		lineItems = append(lineItems, g.lineItem(name, money.ToMinorUnits(item.UnitPrice), item.Quantity))
	}
	if len(lineItems) == 0 {
		lineItems = append(lineItems, g.lineItem("Order #"+oid, money.ToMinorUnits(o.TotalAmount), 1))
	}
	params.LineItems = lineItems

	s, err := g.sessions.New(params)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("stripe: 创建支付会话失败: %w", err)
	}
	g.logger.Info("创建支付会话",
		elog.Int64("order_id", o.ID),
		elog.String("session_id", s.ID))
	return domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) lineItem(name string, unitAmount, quantity int64) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(quantity),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(g.cfg.Currency),
			UnitAmount: stripe.Int64(unitAmount),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
		},
	}
}

// successURL {CHECKOUT_SESSION_ID} 由 stripe 替换
func (g *StripeGateway) successURL(oid string) string {
	sep := "?"
	if strings.Contains(g.cfg.SuccessURL, "?") {
		sep = "&"
	}
	return g.cfg.SuccessURL + sep + "order=" + oid +
		"&provider=" + domain.ProviderStripe + "&session_id={CHECKOUT_SESSION_ID}"
}

func (g *StripeGateway) VerifyCheckoutSession(ctx context.Context, sessionID string) (domain.Verification, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")
	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("stripe: 查询支付会话失败: %w", err)
	}
	intent := s.PaymentIntent
	paid := s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
		(intent != nil && intent.Status == stripe.PaymentIntentStatusSucceeded)
	if !paid {
		return domain.Verification{Ref: s.ID}, nil
	}
	if intent != nil && intent.ID != "" {
		return domain.Verification{Paid: true, Ref: intent.ID}, nil
	}
	return domain.Verification{Paid: true, Ref: s.ID}, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (domain.WebhookEvent, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		if errors.Is(err, webhook.ErrNotSigned) ||
			errors.Is(err, webhook.ErrNoValidSignature) ||
			errors.Is(err, webhook.ErrInvalidHeader) ||
			errors.Is(err, webhook.ErrTooOld) {
			return domain.WebhookEvent{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}
		return domain.WebhookEvent{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	res := domain.WebhookEvent{ID: evt.ID, Type: string(evt.Type)}
	switch res.Type {
	case eventCheckoutSessionCompleted:
		var s stripe.CheckoutSession
		if err = unmarshalObject(evt, &s); err != nil {
			return domain.WebhookEvent{}, err
		}
		res.Kind = domain.EventSucceeded
		res.OrderID = orderIDFromMetadata(s.Metadata)
		res.Ref = s.ID
		if s.PaymentIntent != nil && s.PaymentIntent.ID != "" {
			res.Ref = s.PaymentIntent.ID
		}
	case eventPaymentIntentSucceeded, eventPaymentIntentPaymentFailed:
		var intent stripe.PaymentIntent
		if err = unmarshalObject(evt, &intent); err != nil {
			return domain.WebhookEvent{}, err
		}
		res.Kind = domain.EventSucceeded
		if res.Type == eventPaymentIntentPaymentFailed {
			res.Kind = domain.EventFailed
		}
		res.OrderID = orderIDFromMetadata(intent.Metadata)
		res.Ref = intent.ID
	default:
		res.Kind = domain.EventIgnored
	}
	return res, nil
}

func unmarshalObject(evt stripe.Event, dst any) error {
	if evt.Data == nil || len(evt.Data.Raw) == 0 {
		return fmt.Errorf("%w: 缺少 data.object, event=%s", ErrInvalidPayload, evt.ID)
	}
	if err := json.Unmarshal(evt.Data.Raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return nil
}

func orderIDFromMetadata(metadata map[string]string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(metadata[metadataOrderID]), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
