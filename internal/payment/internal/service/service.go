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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/storefront/internal/order"
	"github.com/ecodeclub/storefront/internal/payment/internal/domain"
	"github.com/ecodeclub/storefront/internal/payment/internal/gateway"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrMissingOrder    = errors.New("缺少订单号")
	ErrMissingSession  = errors.New("缺少支付会话")
	ErrVerifyPayment   = errors.New("无法确认支付结果")
	ErrOrderPaid       = errors.New("订单已支付")
	ErrOrderNotPayable = errors.New("订单不可支付")
	ErrStripeDisabled  = errors.New("未配置 stripe")
)

const (
	outcomePaid        = "paid"
	outcomeFailed      = "failed"
	outcomeAlreadyPaid = "already_paid"
	outcomeIgnored     = "ignored"
	outcomeError       = "error"

	// outcomeCapturedOnCancelled 渠道确认扣款但订单已取消, 需要人工退款
	outcomeCapturedOnCancelled = "captured_on_cancelled"
)

var reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "payment_reconciliations_total",
	Help: "支付对账次数",
}, []string{"provider", "outcome"})

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go Service
type Service interface {
	// StartStripeCheckout 为待支付订单创建 stripe 支付会话
	StartStripeCheckout(ctx context.Context, orderID int64) (domain.CheckoutSession, error)
	// HandleReturn 支付完成跳回时对账, 订单已支付时什么都不做
	HandleReturn(ctx context.Context, req domain.ReturnReq) (domain.ReturnResult, error)
	// HandleWebhook 只有验签失败或者内容非法才返回错误, 找不到订单一律视为已处理
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type service struct {
	orderSvc order.Service
	gateway  gateway.Gateway
	logger   *elog.Component
}

func NewService(orderSvc order.Service, gw gateway.Gateway) Service {
	return &service{
		orderSvc: orderSvc,
		gateway:  gw,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("payment.service")),
	}
}

func (s *service) StartStripeCheckout(ctx context.Context, orderID int64) (domain.CheckoutSession, error) {
	if !s.gateway.Enabled() {
		return domain.CheckoutSession{}, ErrStripeDisabled
	}
	o, err := s.orderSvc.FindOrder(ctx, orderID)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	if o.Status.HasBeenPaid() {
		return domain.CheckoutSession{}, ErrOrderPaid
	}
	if o.Status != order.StatusPending {
		return domain.CheckoutSession{}, fmt.Errorf("%w: status=%s", ErrOrderNotPayable, o.Status)
	}
	return s.gateway.CreateCheckoutSession(ctx, o)
}

func (s *service) HandleReturn(ctx context.Context, req domain.ReturnReq) (domain.ReturnResult, error) {
	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	res, err := s.handleReturn(ctx, provider, req)
	s.count(provider, res, err)
	return res, err
}

func (s *service) handleReturn(ctx context.Context, provider string, req domain.ReturnReq) (domain.ReturnResult, error) {
	if req.OrderID <= 0 {
		return domain.ReturnResult{}, ErrMissingOrder
	}
	o, err := s.orderSvc.FindOrder(ctx, req.OrderID)
	if err != nil {
		return domain.ReturnResult{}, err
	}
	res := domain.ReturnResult{OrderID: o.ID}
	if o.Status.HasBeenPaid() {
		res.AlreadyPaid = true
		return res, nil
	}

	payment := order.Payment{
		OrderID: o.ID,
		Method:  order.PaymentMethodCard,
		Amount:  o.TotalAmount,
	}
	if provider == domain.ProviderStripe {
		if req.SessionID == "" {
			return res, ErrMissingSession
		}
		v, er := s.gateway.VerifyCheckoutSession(ctx, req.SessionID)
		if er != nil {
			return res, fmt.Errorf("%w: %w", ErrVerifyPayment, er)
		}
		payment.Provider = domain.ProviderStripe
		payment.ProviderRef = v.Ref
		res.Paid = v.Paid
	} else {
		payment.Provider = domain.ProviderMock
		payment.ProviderRef = strings.TrimSpace(req.Ref)
		res.Paid = req.Status == domain.MockStatusSuccess
	}
	payment.Status = order.PaymentStatusFailed
	if res.Paid {
		payment.Status = order.PaymentStatusSuccessful
	}
	if _, err = s.orderSvc.RecordPayment(ctx, payment); err != nil {
		if errors.Is(err, order.ErrIllegalTransition) {
			s.logger.Error("订单已取消但支付成功, 需要退款",
				elog.FieldErr(err),
				elog.String("provider", payment.Provider),
				elog.String("ref", payment.ProviderRef),
				elog.Int64("order_id", o.ID))
		}
		res.Paid = false
		return res, err
	}
	return res, nil
}

func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	evt, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		reconciliations.WithLabelValues(domain.ProviderStripe, outcomeError).Inc()
		return err
	}
	outcome, err := s.handleEvent(ctx, evt)
	if err != nil {
		outcome = outcomeError
	}
	reconciliations.WithLabelValues(domain.ProviderStripe, outcome).Inc()
	return err
}

func (s *service) handleEvent(ctx context.Context, evt domain.WebhookEvent) (string, error) {
	if evt.Kind == domain.EventIgnored {
		return outcomeIgnored, nil
	}
	if evt.OrderID == 0 {
		s.logger.Warn("事件缺少订单号", elog.String("event_id", evt.ID), elog.String("type", evt.Type))
		return outcomeIgnored, nil
	}
	o, err := s.orderSvc.FindOrder(ctx, evt.OrderID)
	if errors.Is(err, order.ErrOrderNotFound) {
		s.logger.Warn("事件对应的订单不存在",
			elog.String("event_id", evt.ID),
			elog.Int64("order_id", evt.OrderID))
		return outcomeIgnored, nil
	}
	if err != nil {
		return "", err
	}
	// 重复投递
	if o.Status.HasBeenPaid() {
		return outcomeAlreadyPaid, nil
	}

	payment := order.Payment{
		OrderID:     o.ID,
		Provider:    domain.ProviderStripe,
		Method:      order.PaymentMethodCard,
		Status:      order.PaymentStatusFailed,
		Amount:      o.TotalAmount,
		ProviderRef: evt.Ref,
	}
	outcome := outcomeFailed
	if evt.Kind == domain.EventSucceeded {
		payment.Status = order.PaymentStatusSuccessful
		outcome = outcomePaid
	}
	_, err = s.orderSvc.RecordPayment(ctx, payment)
	if errors.Is(err, order.ErrIllegalTransition) {
		// 订单已被取消, 渠道重试也不会改变结果, 确认收到但需要退款
		s.logger.Error("订单已取消但支付成功, 需要退款",
			elog.FieldErr(err),
			elog.String("event_id", evt.ID),
			elog.String("ref", evt.Ref),
			elog.Int64("order_id", evt.OrderID))
		return outcomeCapturedOnCancelled, nil
	}
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (s *service) count(provider string, res domain.ReturnResult, err error) {
	if provider != domain.ProviderStripe {
		provider = domain.ProviderMock
	}
	outcome := outcomeFailed
	switch {
	case errors.Is(err, order.ErrIllegalTransition):
		outcome = outcomeCapturedOnCancelled
	case err != nil:
		outcome = outcomeError
	case res.AlreadyPaid:
		outcome = outcomeAlreadyPaid
	case res.Paid:
		outcome = outcomePaid
	}
	reconciliations.WithLabelValues(provider, outcome).Inc()
}
