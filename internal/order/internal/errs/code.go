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

package errs

var (
	SystemError = ErrorCode{Code: 504001, Msg: "系统错误"}

	OrderNotFound      = ErrorCode{Code: 404001, Msg: "订单不存在"}
	EmptyCart          = ErrorCode{Code: 404002, Msg: "购物袋为空"}
	ProductNotFound    = ErrorCode{Code: 404003, Msg: "商品不存在"}
	DuplicateRequest   = ErrorCode{Code: 404004, Msg: "重复请求"}
	OrderNotPending    = ErrorCode{Code: 404005, Msg: "订单已不是待支付状态"}
	IllegalTransition  = ErrorCode{Code: 404006, Msg: "非法的订单状态变更"}
	UnknownOrderStatus = ErrorCode{Code: 404007, Msg: "未知订单状态"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
