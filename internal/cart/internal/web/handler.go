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
	"github.com/ecodeclub/storefront/internal/cart/internal/domain"
	"github.com/ecodeclub/storefront/internal/cart/internal/service"
	"github.com/ecodeclub/storefront/internal/pkg/money"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/bag")
	g.GET("", ginx.W(h.Detail))
	g.POST("/add", ginx.B[SKUReq](h.Add))
	g.POST("/update", ginx.B[UpdateQtyReq](h.UpdateQty))
	g.POST("/remove", ginx.B[SKUReq](h.Remove))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) Detail(ctx *ginx.Context) (ginx.Result, error) {
	return h.bag(ctx, CartID(ctx.Context))
}

// Add 加入一件商品
func (h *Handler) Add(ctx *ginx.Context, req SKUReq) (ginx.Result, error) {
	id := EnsureCartID(ctx.Context)
	_, err := h.svc.Add(ctx.Request.Context(), id, req.SKU)
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return productNotFoundResult, nil
	case errors.Is(err, service.ErrNotPurchasable):
		return notPurchasableResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return h.bag(ctx, id)
}

// UpdateQty 数量小于等于 0 时移除
func (h *Handler) UpdateQty(ctx *ginx.Context, req UpdateQtyReq) (ginx.Result, error) {
	id := EnsureCartID(ctx.Context)
	_, err := h.svc.SetQuantity(ctx.Request.Context(), id, req.SKU, req.Qty)
	if err != nil {
		return systemErrorResult, err
	}
	return h.bag(ctx, id)
}

func (h *Handler) Remove(ctx *ginx.Context, req SKUReq) (ginx.Result, error) {
	id := EnsureCartID(ctx.Context)
	_, err := h.svc.Remove(ctx.Request.Context(), id, req.SKU)
	if err != nil {
		return systemErrorResult, err
	}
	return h.bag(ctx, id)
}

func (h *Handler) bag(ctx *ginx.Context, id string) (ginx.Result, error) {
	v, err := h.svc.View(ctx.Request.Context(), id)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Bag{
			Rows: slice.Map(v.Rows, func(idx int, src domain.Row) Row {
				return Row{
					SKU:  src.SKU,
					Name: src.Name,
					Qty:  src.Quantity,
					Unit: src.UnitPrice.StringFixed(money.Places),
					Line: src.LineTotal.StringFixed(money.Places),
				}
			}),
			Subtotal: v.Subtotal.StringFixed(money.Places),
			IsEmpty:  v.IsEmpty(),
		},
	}, nil
}
