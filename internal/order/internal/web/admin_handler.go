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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler 只挂在后台服务上, 权限由后台的中间件统一校验
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[ListOrdersReq](h.List))
	g.GET("/:id/next-statuses", ginx.W(h.NextStatuses))
	g.POST("/:id/status", ginx.BS[UpdateStatusReq](h.UpdateStatus))
}

func (h *AdminHandler) List(ctx *ginx.Context, req ListOrdersReq) (ginx.Result, error) {
	list, count, err := h.svc.ListOrders(ctx, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: count,
			Orders: slice.Map(list, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}

func (h *AdminHandler) NextStatuses(ctx *ginx.Context) (ginx.Result, error) {
	oid, err := orderIDFromPath(ctx)
	if err != nil {
		return orderNotFoundResult, nil
	}
	order, err := h.svc.FindOrder(ctx, oid)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return orderNotFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: NextStatusesResp{
			Status: order.Status.String(),
			Next:   h.svc.AllowedNextStatuses(order.Status.String()),
		},
	}, nil
}

// UpdateStatus 操作人记为当前登录的员工
func (h *AdminHandler) UpdateStatus(ctx *ginx.Context, req UpdateStatusReq, sess session.Session) (ginx.Result, error) {
	oid, err := orderIDFromPath(ctx)
	if err != nil {
		return orderNotFoundResult, nil
	}
	hist, err := h.svc.SetOrderStatus(ctx, oid, req.ToStatus, sess.Claims().Uid)
	switch {
	case errors.Is(err, domain.ErrUnknownStatus):
		return unknownOrderStatusResult, nil
	case errors.Is(err, domain.ErrIllegalTransition):
		return illegalTransitionResult, nil
	case errors.Is(err, repository.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: toStatusHistoryVO(hist)}, nil
}
