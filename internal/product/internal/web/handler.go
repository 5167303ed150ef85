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

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/storefront/internal/pkg/money"
	"github.com/ecodeclub/storefront/internal/product/internal/repository"
	"github.com/ecodeclub/storefront/internal/product/internal/service"
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
	g := server.Group("/product")
	g.POST("/detail", ginx.B[SKUReq](h.Detail))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// Detail 下架商品对买家不可见
func (h *Handler) Detail(ctx *ginx.Context, req SKUReq) (ginx.Result, error) {
	p, err := h.svc.FindBySKU(ctx.Request.Context(), req.SKU)
	if errors.Is(err, repository.ErrProductNotFound) {
		return notFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	if !p.IsActive() {
		return notFoundResult, nil
	}
	return ginx.Result{
		Data: Product{
			SKU:     p.SKU,
			Name:    p.Name,
			Desc:    p.Desc,
			Price:   money.Round(p.Price).StringFixed(money.Places),
			InStock: p.InStock(),
		},
	}, nil
}
