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

package cart

import (
	"github.com/ecodeclub/storefront/internal/cart/internal/domain"
	"github.com/ecodeclub/storefront/internal/cart/internal/service"
	"github.com/ecodeclub/storefront/internal/cart/internal/web"
	"github.com/gin-gonic/gin"
)

type (
	Service = service.Service
	Cart    = domain.Cart
	Line    = domain.Line
	Handler = web.Handler
)

const (
	IDCookie = web.CartIDCookie
	IDHeader = web.CartIDHeader
)

var ErrNotPurchasable = service.ErrNotPurchasable

type Module struct {
	Svc Service
	Hdl *Handler
}

// IDFromContext 读取请求携带的购物袋ID
func IDFromContext(ctx *gin.Context) string {
	return web.CartID(ctx)
}
