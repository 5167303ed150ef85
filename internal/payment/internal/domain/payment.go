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

package domain

const (
	ProviderStripe = "stripe"
	ProviderMock   = "mock"

	// MockStatusSuccess 模拟支付回跳时 status 取这个值表示成功
	MockStatusSuccess = "success"
)

// ReturnReq 支付完成后浏览器跳回时携带的参数
type ReturnReq struct {
	OrderID   int64
	Provider  string
	Status    string
	Ref       string
	SessionID string
}

type ReturnResult struct {
	OrderID int64
	// Paid 本次对账后订单已支付
	Paid bool
	// AlreadyPaid 订单在对账前就已支付, 什么都没有写
	AlreadyPaid bool
}

type CheckoutSession struct {
	ID  string
	URL string
}

// Verification 向支付渠道查询到的结果
type Verification struct {
	Paid bool
	Ref  string
}

type EventKind uint8

const (
	EventIgnored EventKind = iota
	EventSucceeded
	EventFailed
)

// WebhookEvent 已经验签并解析的渠道事件
type WebhookEvent struct {
	ID   string
	Type string
	Kind EventKind
	// OrderID 从 metadata.order_id 解析, 缺失或非法时为 0
	OrderID int64
	Ref     string
}
