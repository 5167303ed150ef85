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

package order

import (
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/event"
	"github.com/ecodeclub/storefront/internal/order/internal/job"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	"github.com/ecodeclub/storefront/internal/order/internal/web"
)

type (
	Service              = service.Service
	Handler              = web.Handler
	AdminHandler         = web.AdminHandler
	CancelStaleOrdersJob = job.CancelStaleOrdersJob

	Order            = domain.Order
	OrderItem        = domain.OrderItem
	OrderStatus      = domain.OrderStatus
	Payment          = domain.Payment
	PaymentMethod    = domain.PaymentMethod
	PaymentStatus    = domain.PaymentStatus
	StatusHistory    = domain.StatusHistory
	CartLine         = domain.CartLine
	OrderStatusEvent = event.OrderStatusEvent
)

const (
	StatusPending   = domain.StatusPending
	StatusPaid      = domain.StatusPaid
	StatusShipped   = domain.StatusShipped
	StatusDelivered = domain.StatusDelivered
	StatusCancelled = domain.StatusCancelled

	PaymentMethodCard   = domain.PaymentMethodCard
	PaymentMethodPayPal = domain.PaymentMethodPayPal
	PaymentMethodCOD    = domain.PaymentMethodCOD

	PaymentStatusPending    = domain.PaymentStatusPending
	PaymentStatusSuccessful = domain.PaymentStatusSuccessful
	PaymentStatusFailed     = domain.PaymentStatusFailed

	OrderStatusEventName = event.OrderStatusEventName
)

var (
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrIllegalTransition = domain.ErrIllegalTransition
	ErrUnknownStatus     = domain.ErrUnknownStatus
	ErrEmptyCart         = service.ErrEmptyCart
)

type Module struct {
	Svc                  Service
	Hdl                  *Handler
	AdminHdl             *AdminHandler
	CancelStaleOrdersJob *CancelStaleOrdersJob
}
