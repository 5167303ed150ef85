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
	"fmt"
	"strconv"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/storefront/internal/buyer"
	"github.com/ecodeclub/storefront/internal/cart"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

const checkoutRequestExpiration = 10 * time.Minute

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc     service.Service
	cartSvc cart.Service
	cache   ecache.Cache
	logger  *elog.Component
}

func NewHandler(svc service.Service, cartSvc cart.Service, cache ecache.Cache) *Handler {
	return &Handler{
		svc:     svc,
		cartSvc: cartSvc,
		cache:   cache,
		logger:  elog.DefaultLogger.With(elog.FieldComponent("order.Handler")),
	}
}

// PublicRoutes 游客也可以下单, 登录与否在 Checkout 里区分
func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/checkout", ginx.B[CheckoutReq](h.Checkout))
	g.GET("/:id", ginx.W(h.Detail))
	g.POST("/:id/details", ginx.B[DetailsReq](h.UpdateDetails))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// Checkout 把当前购物袋转换为待支付订单
func (h *Handler) Checkout(ctx *ginx.Context, req CheckoutReq) (ginx.Result, error) {
	if req.RequestID != "" {
		ok, err := h.cache.SetNX(ctx, h.checkoutRequestKey(req.RequestID), req.RequestID, checkoutRequestExpiration)
		if err != nil {
			return systemErrorResult, fmt.Errorf("缓存请求ID失败: %w", err)
		}
		if !ok {
			return duplicateRequestResult, nil
		}
	}
	res, err := h.checkout(ctx)
	if res.Code != 0 || err != nil {
		// 下单没有成功, 允许用同一个请求ID重试
		h.releaseRequestID(ctx, req.RequestID)
	}
	return res, err
}

func (h *Handler) checkout(ctx *ginx.Context) (ginx.Result, error) {
	c, err := h.cartSvc.Get(ctx, cart.IDFromContext(ctx.Context))
	if err != nil {
		return systemErrorResult, err
	}
	lines := slice.Map(c.Lines, func(idx int, src cart.Line) domain.CartLine {
		return domain.CartLine{SKU: src.SKU, Quantity: src.Quantity}
	})
	order, err := h.svc.CreateOrderFromCart(ctx, buyer.IdentityFromContext(ctx), lines)
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return emptyCartResult, nil
	case errors.Is(err, product.ErrProductNotFound):
		return productNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: toOrderVO(order)}, nil
}

func (h *Handler) releaseRequestID(ctx *ginx.Context, requestID string) {
	if requestID == "" {
		return
	}
	if _, err := h.cache.Delete(ctx, h.checkoutRequestKey(requestID)); err != nil {
		h.logger.Warn("释放请求ID失败", elog.FieldErr(err), elog.String("request_id", requestID))
	}
}

func (h *Handler) checkoutRequestKey(requestID string) string {
	return fmt.Sprintf("order:checkout:%s", requestID)
}

// Detail 订单, 订单项, 支付流水与状态历史
func (h *Handler) Detail(ctx *ginx.Context) (ginx.Result, error) {
	oid, err := orderIDFromPath(ctx)
	if err != nil {
		return orderNotFoundResult, nil
	}
	var (
		eg        errgroup.Group
		order     domain.Order
		payments  []domain.Payment
		histories []domain.StatusHistory
	)
	eg.Go(func() error {
		var er error
		order, er = h.svc.FindOrder(ctx, oid)
		return er
	})
	eg.Go(func() error {
		var er error
		payments, er = h.svc.ListPayments(ctx, oid)
		return er
	})
	eg.Go(func() error {
		var er error
		histories, er = h.svc.ListHistories(ctx, oid)
		return er
	})
	err = eg.Wait()
	if errors.Is(err, repository.ErrOrderNotFound) {
		return orderNotFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	vo := toOrderVO(order)
	vo.Payments = slice.Map(payments, func(idx int, src domain.Payment) Payment {
		return toPaymentVO(src)
	})
	vo.Histories = slice.Map(histories, func(idx int, src domain.StatusHistory) StatusHistory {
		return toStatusHistoryVO(src)
	})
	return ginx.Result{Data: vo}, nil
}

func (h *Handler) UpdateDetails(ctx *ginx.Context, req DetailsReq) (ginx.Result, error) {
	oid, err := orderIDFromPath(ctx)
	if err != nil {
		return orderNotFoundResult, nil
	}
	err = h.svc.UpdateDetails(ctx, oid, req.toDomain())
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case errors.Is(err, service.ErrOrderNotPending):
		return orderNotPendingResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func orderIDFromPath(ctx *ginx.Context) (int64, error) {
	return strconv.ParseInt(ctx.Context.Param("id"), 10, 64)
}
