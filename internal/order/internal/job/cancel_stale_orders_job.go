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

package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/gotomicro/ego/core/elog"
)

// CancelStaleOrdersJob 取消长时间未支付的订单
type CancelStaleOrdersJob struct {
	svc    service.Service
	limit  int
	minute int64
	logger *elog.Component
}

func NewCancelStaleOrdersJob(svc service.Service, limit int, minute int64) *CancelStaleOrdersJob {
	return &CancelStaleOrdersJob{
		svc:    svc,
		limit:  limit,
		minute: minute,
		logger: elog.DefaultLogger.With(elog.FieldComponent("order.CancelStaleOrdersJob")),
	}
}

func (c *CancelStaleOrdersJob) Name() string {
	return "CancelStaleOrdersJob"
}

func (c *CancelStaleOrdersJob) Run(ctx context.Context) error {
	ctime := time.Now().Add(-time.Duration(c.minute) * time.Minute).UnixMilli()
	for {
		// 取消成功或者已被支付的订单都会离开待支付列表, 所以总是从头取
		orders, _, err := c.svc.ListStalePendingOrders(ctx, 0, c.limit, ctime)
		if err != nil {
			return fmt.Errorf("获取超时订单失败: %w", err)
		}
		cancelled := 0
		for _, o := range orders {
			_, err = c.svc.SetOrderStatus(ctx, o.ID, domain.StatusCancelled.String(), 0)
			if errors.Is(err, domain.ErrIllegalTransition) {
				continue
			}
			if err != nil {
				return fmt.Errorf("取消超时订单失败 order_id=%d: %w", o.ID, err)
			}
			cancelled++
			c.logger.Info("取消超时订单", elog.Int64("order_id", o.ID))
		}
		if len(orders) < c.limit || cancelled == 0 {
			return nil
		}
	}
}
