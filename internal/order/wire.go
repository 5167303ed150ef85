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

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/storefront/config"
	"github.com/ecodeclub/storefront/internal/buyer"
	"github.com/ecodeclub/storefront/internal/cart"
	"github.com/ecodeclub/storefront/internal/order/internal/event"
	"github.com/ecodeclub/storefront/internal/order/internal/job"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/order/internal/repository/dao"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/ecodeclub/storefront/internal/order/internal/web"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var ServiceSet = wire.NewSet(
	InitTablesOnce,
	repository.NewRepository,
	event.NewOrderStatusEventProducer,
	service.NewService,
)

func InitModule(db *egorm.Component,
	q mq.MQ,
	ec ecache.Cache,
	bm *buyer.Module,
	pm *product.Module,
	cm *cart.Module) (*Module, error) {
	wire.Build(
		wire.FieldsOf(new(*buyer.Module), "Svc"),
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*cart.Module), "Svc"),
		ServiceSet,
		web.NewHandler,
		web.NewAdminHandler,
		initCancelStaleOrdersJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}

func initCancelStaleOrdersJob(svc service.Service) *job.CancelStaleOrdersJob {
	var cfg config.OrderConfig
	// 没有配置时使用默认值
	_ = econf.UnmarshalKey("order", &cfg)
	cfg = cfg.WithDefaults()
	return job.NewCancelStaleOrdersJob(svc, cfg.BatchSize, cfg.StaleMinutes)
}
