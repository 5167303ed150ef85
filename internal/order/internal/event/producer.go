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

import (
	"context"
	"strconv"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/pkg/mqx"
)

//go:generate mockgen -source=./producer.go -package=evtmocks -destination=./mocks/producer.mock.go OrderStatusEventProducer
type OrderStatusEventProducer interface {
	Produce(ctx context.Context, evt OrderStatusEvent) error
}

// NewOrderStatusEventProducer 按订单ID作为消息 key, 同一订单的事件落在同一分区
func NewOrderStatusEventProducer(q mq.MQ) (OrderStatusEventProducer, error) {
	p, err := mqx.NewGeneralProducer[OrderStatusEvent](q, OrderStatusEventName,
		mqx.WithKeyFunc(func(evt OrderStatusEvent) []byte {
			return []byte(strconv.FormatInt(evt.OrderID, 10))
		}))
	if err != nil {
		return nil, err
	}
	return p, nil
}
