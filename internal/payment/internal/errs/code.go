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
	SystemError = ErrorCode{Code: 505001, Msg: "系统错误"}

	OrderNotFound  = ErrorCode{Code: 405001, Msg: "订单不存在"}
	MissingOrder   = ErrorCode{Code: 405002, Msg: "缺少订单号"}
	MissingSession = ErrorCode{Code: 405003, Msg: "缺少支付会话"}
	VerifyFailed   = ErrorCode{Code: 405004, Msg: "无法确认支付结果"}
	AlreadyPaid    = ErrorCode{Code: 405005, Msg: "订单已支付"}
	StripeDisabled = ErrorCode{Code: 405006, Msg: "未开启在线支付"}
	NotPayable     = ErrorCode{Code: 405007, Msg: "订单不可支付"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
