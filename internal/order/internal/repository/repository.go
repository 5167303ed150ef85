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

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/repository/dao"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("订单不存在")
	ErrStatusChanged = dao.ErrStatusChanged
)

//go:generate mockgen -source=./repository.go -package=repomocks -destination=./mocks/repository.mock.go OrderRepository
type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	// FindOrderByID 不包含订单项
	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	FindOrderWithItems(ctx context.Context, id int64) (domain.Order, error)
	UpdateDetails(ctx context.Context, id int64, details domain.Details) error
	ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, error)
	TotalOrders(ctx context.Context) (int64, error)
	ListOrdersByStatusBefore(ctx context.Context, status domain.OrderStatus, ctime int64, offset, limit int) ([]domain.Order, error)
	TotalOrdersByStatusBefore(ctx context.Context, status domain.OrderStatus, ctime int64) (int64, error)

	UpdateStatus(ctx context.Context, h domain.StatusHistory) (domain.StatusHistory, error)
	CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error)
	CreatePaymentAndUpdateStatus(ctx context.Context, p domain.Payment, h domain.StatusHistory) (domain.Payment, domain.StatusHistory, error)
	FindPayments(ctx context.Context, orderID int64) ([]domain.Payment, error)
	FindHistories(ctx context.Context, orderID int64) ([]domain.StatusHistory, error)
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{
		d: d,
	}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	items := o.toOrderItemEntities(order.Items)
	entity, err := o.d.CreateOrder(ctx, o.toOrderEntity(order), items)
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = entity.Id
	order.Ctime, order.Utime = entity.Ctime, entity.Utime
	for i := range order.Items {
		order.Items[i].OrderID = entity.Id
		order.Items[i].ID = items[i].Id
	}
	return order, nil
}

func (o *orderRepository) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	order, err := o.d.FindOrderByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return o.toOrderDomain(order, nil), nil
}

func (o *orderRepository) FindOrderWithItems(ctx context.Context, id int64) (domain.Order, error) {
	order, err := o.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := o.d.FindOrderItemsByOrderID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
		return o.toOrderItemDomain(src)
	})
	return order, nil
}

func (o *orderRepository) UpdateDetails(ctx context.Context, id int64, details domain.Details) error {
	entity := o.toOrderEntity(domain.Order{ID: id, Details: details})
	return o.d.UpdateDetails(ctx, entity, domain.StatusPending.String())
}

func (o *orderRepository) ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	os, err := o.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, nil)
	}), nil
}

func (o *orderRepository) TotalOrders(ctx context.Context) (int64, error) {
	return o.d.Count(ctx)
}

func (o *orderRepository) ListOrdersByStatusBefore(ctx context.Context, status domain.OrderStatus, ctime int64, offset, limit int) ([]domain.Order, error) {
	os, err := o.d.ListByStatusBefore(ctx, status.String(), ctime, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, nil)
	}), nil
}

func (o *orderRepository) TotalOrdersByStatusBefore(ctx context.Context, status domain.OrderStatus, ctime int64) (int64, error) {
	return o.d.CountByStatusBefore(ctx, status.String(), ctime)
}

func (o *orderRepository) UpdateStatus(ctx context.Context, h domain.StatusHistory) (domain.StatusHistory, error) {
	res, err := o.d.UpdateStatus(ctx, o.toHistoryEntity(h))
	if err != nil {
		return domain.StatusHistory{}, err
	}
	return o.toHistoryDomain(res), nil
}

func (o *orderRepository) CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	res, err := o.d.CreatePayment(ctx, o.toPaymentEntity(p))
	if err != nil {
		return domain.Payment{}, err
	}
	return o.toPaymentDomain(res), nil
}

func (o *orderRepository) CreatePaymentAndUpdateStatus(ctx context.Context, p domain.Payment, h domain.StatusHistory) (domain.Payment, domain.StatusHistory, error) {
	pr, hr, err := o.d.CreatePaymentAndUpdateStatus(ctx, o.toPaymentEntity(p), o.toHistoryEntity(h))
	if err != nil {
		return domain.Payment{}, domain.StatusHistory{}, err
	}
	return o.toPaymentDomain(pr), o.toHistoryDomain(hr), nil
}

func (o *orderRepository) FindPayments(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	ps, err := o.d.FindPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.Payment) domain.Payment {
		return o.toPaymentDomain(src)
	}), nil
}

func (o *orderRepository) FindHistories(ctx context.Context, orderID int64) ([]domain.StatusHistory, error) {
	hs, err := o.d.FindHistoriesByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return slice.Map(hs, func(idx int, src dao.OrderStatusHistory) domain.StatusHistory {
		return o.toHistoryDomain(src)
	}), nil
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	d := order.Details
	return dao.Order{
		Id:           order.ID,
		BuyerId:      sql.NullInt64{Int64: order.BuyerID, Valid: order.BuyerID > 0},
		Status:       order.Status.String(),
		TotalAmount:  order.TotalAmount,
		BuyerName:    d.Contact.Name,
		BuyerEmail:   d.Contact.Email,
		BuyerPhone:   d.Contact.Phone,
		ShipAddress1: d.Shipping.Line1,
		ShipAddress2: d.Shipping.Line2,
		ShipCity:     d.Shipping.City,
		ShipPostcode: d.Shipping.Postcode,
		ShipCountry:  d.Shipping.Country,
		Notes:        d.Notes,
	}
}

func (o *orderRepository) toOrderItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			ProductId: src.ProductID,
			SKU:       src.SKU,
			Name:      src.Name,
			Quantity:  src.Quantity,
			UnitPrice: src.UnitPrice,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, items []domain.OrderItem) domain.Order {
	return domain.Order{
		ID:      order.Id,
		BuyerID: order.BuyerId.Int64,
		// 历史数据里的状态可能是大写
		Status:      domain.OrderStatus(strings.ToLower(strings.TrimSpace(order.Status))),
		TotalAmount: order.TotalAmount,
		Details: domain.Details{
			Contact: domain.Contact{
				Name:  order.BuyerName,
				Email: order.BuyerEmail,
				Phone: order.BuyerPhone,
			},
			Shipping: domain.Address{
				Line1:    order.ShipAddress1,
				Line2:    order.ShipAddress2,
				City:     order.ShipCity,
				Postcode: order.ShipPostcode,
				Country:  order.ShipCountry,
			},
			Notes: order.Notes,
		},
		Items: items,
		Ctime: order.Ctime,
		Utime: order.Utime,
	}
}

func (o *orderRepository) toOrderItemDomain(item dao.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ID:        item.Id,
		OrderID:   item.OrderId,
		ProductID: item.ProductId,
		SKU:       item.SKU,
		Name:      item.Name,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

func (o *orderRepository) toPaymentEntity(p domain.Payment) dao.Payment {
	return dao.Payment{
		Id:          p.ID,
		OrderId:     p.OrderID,
		Provider:    p.Provider,
		Method:      string(p.Method),
		Status:      string(p.Status),
		Amount:      p.Amount,
		ProviderRef: sql.NullString{String: p.ProviderRef, Valid: p.ProviderRef != ""},
	}
}

func (o *orderRepository) toPaymentDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:          p.Id,
		OrderID:     p.OrderId,
		Provider:    p.Provider,
		Method:      domain.PaymentMethod(p.Method),
		Status:      domain.PaymentStatus(p.Status),
		Amount:      p.Amount,
		ProviderRef: p.ProviderRef.String,
		Ctime:       p.Ctime,
	}
}

func (o *orderRepository) toHistoryEntity(h domain.StatusHistory) dao.OrderStatusHistory {
	return dao.OrderStatusHistory{
		OrderId:    h.OrderID,
		FromStatus: h.From.String(),
		ToStatus:   h.To.String(),
		ChangedBy:  sql.NullInt64{Int64: h.ActorID, Valid: h.ActorID > 0},
	}
}

func (o *orderRepository) toHistoryDomain(h dao.OrderStatusHistory) domain.StatusHistory {
	return domain.StatusHistory{
		ID:      h.Id,
		OrderID: h.OrderId,
		From:    domain.OrderStatus(h.FromStatus),
		To:      domain.OrderStatus(h.ToStatus),
		ActorID: h.ChangedBy.Int64,
		Ctime:   h.Ctime,
	}
}
