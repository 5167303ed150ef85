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

package ioc

import (
	"net/http"
	"slices"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/cart"
	"github.com/ecodeclub/storefront/internal/order"
	"github.com/ecodeclub/storefront/internal/payment"
	"github.com/ecodeclub/storefront/internal/pkg/middleware"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
)

func InitMetrics() *middleware.MetricsBuilder {
	return middleware.NewMetricsBuilder(nil, "/hello")
}

func initCors(allowHeaders ...string) gin.HandlerFunc {
	origins := econf.GetStringSlice("cors.allowOrigins")
	return cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token", cart.IDHeader},
		AllowCredentials: true,
		AllowHeaders:     append([]string{"Authorization", "Content-Type"}, allowHeaders...),
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			return slices.Contains(origins, origin)
		},
	})
}

// initGinxServer 店铺接口都允许游客访问, 登录与否只影响买家身份
func initGinxServer(sp session.Provider,
	mb *middleware.MetricsBuilder,
	productHdl *product.Handler,
	cartHdl *cart.Handler,
	orderHdl *order.Handler,
	payHdl *payment.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(mb.Build())
	res.Use(initCors(cart.IDHeader))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	productHdl.PublicRoutes(res.Engine)
	cartHdl.PublicRoutes(res.Engine)
	orderHdl.PublicRoutes(res.Engine)
	payHdl.PublicRoutes(res.Engine)
	return res
}
