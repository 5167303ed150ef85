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

package payment

import (
	"github.com/ecodeclub/storefront/config"
	"github.com/ecodeclub/storefront/internal/cart"
	"github.com/ecodeclub/storefront/internal/order"
	"github.com/ecodeclub/storefront/internal/payment/internal/gateway"
	"github.com/ecodeclub/storefront/internal/payment/internal/service"
	"github.com/ecodeclub/storefront/internal/payment/internal/web"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule(om *order.Module, cm *cart.Module) *Module {
	wire.Build(
		wire.FieldsOf(new(*order.Module), "Svc"),
		wire.FieldsOf(new(*cart.Module), "Svc"),
		initGateway,
		service.NewService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

// initGateway 没有配置 apiKey 时 stripe 不可用, 只能走模拟支付
func initGateway() gateway.Gateway {
	var cfg config.StripeConfig
	_ = econf.UnmarshalKey("stripe", &cfg)
	return gateway.NewStripeGateway(cfg)
}
