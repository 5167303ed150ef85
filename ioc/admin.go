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

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/order"
	"github.com/ecodeclub/storefront/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server/egin"
)

type AdminServer *egin.Component

func InitAdminServer(mb *middleware.MetricsBuilder, orderAdminHdl *order.AdminHandler) AdminServer {
	res := egin.Load("admin").Build()
	res.Use(mb.Build())
	res.Use(initCors("X-Timestamp"))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	res.Use(session.CheckLoginMiddleware())
	res.Use(AdminPermission())
	orderAdminHdl.PrivateRoutes(res.Engine)
	return res
}

// AdminPermission 只有会话里带 staff=true 的店员才能访问后台
func AdminPermission() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sess, err := session.Get(&ginx.Context{Context: ctx})
		if err != nil {
			elog.Error("非法访问 admin 接口", elog.FieldErr(err))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if sess.Claims().Get("staff").StringOrDefault("") != "true" {
			elog.Error("非法访问 admin 接口, 不是店员", elog.Int64("uid", sess.Claims().Uid))
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
	}
}
