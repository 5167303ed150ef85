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

package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/storefront/internal/cart"
	"github.com/ecodeclub/storefront/internal/order"
	"github.com/ecodeclub/storefront/internal/payment/internal/domain"
	"github.com/ecodeclub/storefront/internal/payment/internal/gateway"
	"github.com/ecodeclub/storefront/internal/payment/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// stripe 事件体上限
const maxWebhookBodyBytes = int64(65536)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc     service.Service
	cartSvc cart.Service
	logger  *elog.Component
}

func NewHandler(svc service.Service, cartSvc cart.Service) *Handler {
	return &Handler{
		svc:     svc,
		cartSvc: cartSvc,
		logger:  elog.DefaultLogger.With(elog.FieldComponent("payment.web")),
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/order/:id/pay/stripe", ginx.W(h.StartStripeCheckout))
	server.GET("/pay/return", ginx.W(h.Return))
	// 回调需要原始请求体验签, 不走 ginx 的参数绑定
	server.POST("/pay/stripe/webhook", h.StripeWebhook)
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) StartStripeCheckout(ctx *ginx.Context) (ginx.Result, error) {
	oid, err := strconv.ParseInt(ctx.Context.Param("id"), 10, 64)
	if err != nil {
		return orderNotFoundResult, nil
	}
	s, err := h.svc.StartStripeCheckout(ctx, oid)
	switch {
	case errors.Is(err, service.ErrStripeDisabled):
		return stripeDisabledResult, nil
	case errors.Is(err, order.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case errors.Is(err, service.ErrOrderPaid):
		return alreadyPaidResult, nil
	case errors.Is(err, service.ErrOrderNotPayable):
		return notPayableResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: CheckoutSession{SessionID: s.ID, URL: s.URL}}, nil
}

// Return 支付渠道跳回, 支付成功后清空购物袋
func (h *Handler) Return(ctx *ginx.Context) (ginx.Result, error) {
	req := domain.ReturnReq{
		Provider:  ctx.Context.Query("provider"),
		Status:    ctx.Context.Query("status"),
		Ref:       ctx.Context.Query("ref"),
		SessionID: ctx.Context.Query("session_id"),
	}
	if oid := ctx.Context.Query("order"); oid != "" {
		id, err := strconv.ParseInt(oid, 10, 64)
		if err != nil {
			return orderNotFoundResult, nil
		}
		req.OrderID = id
	}
	res, err := h.svc.HandleReturn(ctx, req)
	switch {
	case errors.Is(err, service.ErrMissingOrder):
		return missingOrderResult, nil
	case errors.Is(err, order.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case errors.Is(err, service.ErrMissingSession):
		return missingSessionResult, nil
	case errors.Is(err, service.ErrVerifyPayment):
		h.logger.Warn("无法确认支付结果", elog.FieldErr(err), elog.Int64("order_id", req.OrderID))
		return verifyFailedResult, nil
	case errors.Is(err, order.ErrIllegalTransition):
		return notPayableResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	if res.Paid {
		if er := h.cartSvc.Clear(ctx, cart.IDFromContext(ctx.Context)); er != nil {
			h.logger.Warn("清空购物袋失败", elog.FieldErr(er), elog.Int64("order_id", res.OrderID))
		}
	}
	return ginx.Result{Data: ReturnResult{
		OrderID:     res.OrderID,
		Paid:        res.Paid,
		AlreadyPaid: res.AlreadyPaid,
	}}, nil
}

// StripeWebhook 验签或解析失败返回 400, 渠道不会重试; 系统错误返回 500 让渠道重试
func (h *Handler) StripeWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		ctx.Status(http.StatusBadRequest)
		return
	}
	err = h.svc.HandleWebhook(ctx, payload, ctx.GetHeader("Stripe-Signature"))
	switch {
	case errors.Is(err, gateway.ErrInvalidSignature), errors.Is(err, gateway.ErrInvalidPayload):
		h.logger.Warn("拒绝 stripe 事件", elog.FieldErr(err))
		ctx.Status(http.StatusBadRequest)
	case err != nil:
		h.logger.Error("处理 stripe 事件失败", elog.FieldErr(err))
		ctx.Status(http.StatusInternalServerError)
	default:
		ctx.Status(http.StatusOK)
	}
}
