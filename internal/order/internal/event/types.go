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

package event

const OrderStatusEventName = "order_status_events"

// OrderStatusEvent 订单状态变更已经提交之后发出
type OrderStatusEvent struct {
	OrderID int64  `json:"orderId"`
	BuyerID int64  `json:"buyerId"`
	From    string `json:"from"`
	To      string `json:"to"`
	ActorID int64  `json:"actorId"`
	Ctime   int64  `json:"ctime"`
}
