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
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/internal/product/internal/service"
	"github.com/gotomicro/ego/core/elog"
)

type ProductConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewProductConsumer(svc service.Service, q mq.MQ) (*ProductConsumer, error) {
	const groupID = "product_sync_group"
	consumer, err := q.Consumer(SyncProductTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &ProductConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("product.consumer")),
	}, nil
}

func (s *ProductConsumer) Consume(ctx context.Context) error {
	msg, err := s.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt ProductEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	return s.svc.Save(ctx, evt.ToDomain())
}

func (s *ProductConsumer) Start(ctx context.Context) {
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			err := s.Consume(ctx)
			if err != nil {
				s.logger.Error("同步商品失败", elog.FieldErr(err))
			}
		}
	}()
}

func (s *ProductConsumer) Stop(_ context.Context) error {
	return s.consumer.Close()
}
