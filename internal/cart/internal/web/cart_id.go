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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
)

const (
	CartIDCookie = "cart_id"
	CartIDHeader = "X-Cart-ID"

	cartIDMaxAge = int(time.Hour * 24 * 7 / time.Second)
)

// CartID 优先取 header, 其次取 cookie, 都没有返回空串
func CartID(ctx *gin.Context) string {
	if id := ctx.GetHeader(CartIDHeader); id != "" {
		return id
	}
	id, err := ctx.Cookie(CartIDCookie)
	if err != nil {
		return ""
	}
	return id
}

// EnsureCartID 没有购物袋时生成一个新的ID并下发
func EnsureCartID(ctx *gin.Context) string {
	id := CartID(ctx)
	if id == "" {
		id = shortuuid.New()
		ctx.SetCookie(CartIDCookie, id, cartIDMaxAge, "/", "", false, true)
	}
	ctx.Header(CartIDHeader, id)
	return id
}
