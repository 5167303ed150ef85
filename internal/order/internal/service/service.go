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

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/buyer"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/event"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/pkg/money"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/gotomicro/ego/core/elog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart       = errors.New("购物袋为空")
	ErrInvalidAmount   = errors.New("支付金额非法")
	ErrInvalidProvider = errors.New("支付渠道为空")
	ErrOrderNotPending = errors.New("订单已不是待支付状态")
)

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	// CreateOrderFromCart 把购物袋转换为待支付订单, 订单与订单项要么全部落库要么都不落库
	CreateOrderFromCart(ctx context.Context, id buyer.Identity, lines []domain.CartLine) (domain.Order, error)
	UpdateDetails(ctx context.Context, orderID int64, details domain.Details) error
	FindOrder(ctx context.Context, orderID int64) (domain.Order, error)
	ListPayments(ctx context.Context, orderID int64) ([]domain.Payment, error)
	ListHistories(ctx context.Context, orderID int64) ([]domain.StatusHistory, error)
	ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, int64, error)
	ListStalePendingOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, int64, error)

	// RecordPayment 追加一条支付流水, 支付成功时把待支付订单推进到已支付
	RecordPayment(ctx context.Context, p domain.Payment) (domain.Payment, error)
	// SetOrderStatus actorID 为 0 表示系统操作
	SetOrderStatus(ctx context.Context, orderID int64, toStatus string, actorID int64) (domain.StatusHistory, error)
	AllowedNextStatuses(status string) []string
}

type service struct {
	repo       repository.OrderRepository
	buyerSvc   buyer.Service
	productSvc product.Service
	producer   event.OrderStatusEventProducer
	logger     *elog.Component
}

func NewService(repo repository.OrderRepository,
	buyerSvc buyer.Service,
	productSvc product.Service,
	producer event.OrderStatusEventProducer) Service {
	return &service{
		repo:       repo,
		buyerSvc:   buyerSvc,
		productSvc: productSvc,
		producer:   producer,
		logger:     elog.DefaultLogger.With(elog.FieldComponent("order.service")),
	}
}

func (s *service) CreateOrderFromCart(ctx context.Context, id buyer.Identity, lines []domain.CartLine) (domain.Order, error) {
	lines = slice.FilterMap(lines, func(idx int, src domain.CartLine) (domain.CartLine, bool) {
		src.SKU = strings.TrimSpace(src.SKU)
		return src, src.Quantity > 0
	})
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	// 先完成计价, 任何一个 SKU 不存在都不会写入任何数据
	items, total, err := s.priceItems(ctx, lines)
	if err != nil {
		return domain.Order{}, err
	}

	b, err := s.buyerSvc.ResolveBuyer(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	return s.repo.CreateOrder(ctx, domain.Order{
		BuyerID:     b.ID,
		Status:      domain.StatusPending,
		TotalAmount: total,
		Items:       items,
	})
}

// priceItems 单价先取整, 行金额再取整, 总价逐行累加取整
func (s *service) priceItems(ctx context.Context, lines []domain.CartLine) ([]domain.OrderItem, decimal.Decimal, error) {
	skus := slice.Map(lines, func(idx int, src domain.CartLine) string {
		return src.SKU
	})
	products, err := s.productSvc.FindBySKUs(ctx, skus)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("查询商品失败: %w", err)
	}
	items := make([]domain.OrderItem, 0, len(lines))
	lineTotals := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		p, ok := products[l.SKU]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: sku=%s", product.ErrProductNotFound, l.SKU)
		}
		item := domain.OrderItem{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  l.Quantity,
			UnitPrice: money.Round(p.Price),
		}
		items = append(items, item)
		lineTotals = append(lineTotals, item.LineTotal())
	}
	return items, money.Sum(lineTotals...), nil
}

func (s *service) UpdateDetails(ctx context.Context, orderID int64, details domain.Details) error {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusPending {
		return ErrOrderNotPending
	}
	err = s.repo.UpdateDetails(ctx, orderID, details)
	if errors.Is(err, repository.ErrStatusChanged) {
		return ErrOrderNotPending
	}
	return err
}

func (s *service) FindOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	return s.repo.FindOrderWithItems(ctx, orderID)
}

func (s *service) ListPayments(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	return s.repo.FindPayments(ctx, orderID)
}

func (s *service) ListHistories(ctx context.Context, orderID int64) ([]domain.StatusHistory, error) {
	return s.repo.FindHistories(ctx, orderID)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrders(ctx, offset, limit)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) ListStalePendingOrders(ctx context.Context, offset, limit int, ctime int64) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrdersByStatusBefore(ctx, domain.StatusPending, ctime, offset, limit)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrdersByStatusBefore(ctx, domain.StatusPending, ctime)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) RecordPayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	if !p.Method.IsValid() {
		return domain.Payment{}, fmt.Errorf("%w: %s", domain.ErrInvalidPaymentMethod, p.Method)
	}
	if !p.Status.IsValid() {
		return domain.Payment{}, fmt.Errorf("%w: %s", domain.ErrInvalidPaymentStatus, p.Status)
	}
	if p.Amount.IsNegative() {
		return domain.Payment{}, fmt.Errorf("%w: %s", ErrInvalidAmount, p.Amount)
	}
	p.Provider = strings.TrimSpace(p.Provider)
	if p.Provider == "" {
		return domain.Payment{}, ErrInvalidProvider
	}
	p.Amount = money.Round(p.Amount)

	order, err := s.repo.FindOrderByID(ctx, p.OrderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if p.Status != domain.PaymentStatusSuccessful {
		return s.repo.CreatePayment(ctx, p)
	}
	if order.Status != domain.StatusPending {
		return s.recordWithoutTransition(ctx, order, p)
	}

	h := domain.StatusHistory{OrderID: order.ID, From: domain.StatusPending, To: domain.StatusPaid}
	res, h, err := s.repo.CreatePaymentAndUpdateStatus(ctx, p, h)
	if errors.Is(err, repository.ErrStatusChanged) {
		// 并发的另一次支付成功抢先推进了状态, 事务已经回滚, 按最新状态重新处理
		latest, er := s.repo.FindOrderByID(ctx, order.ID)
		if er != nil {
			return domain.Payment{}, er
		}
		if latest.Status == domain.StatusPending {
			return domain.Payment{}, err
		}
		return s.recordWithoutTransition(ctx, latest, p)
	}
	if err != nil {
		return domain.Payment{}, err
	}
	s.publish(ctx, order, h)
	return res, nil
}

// recordWithoutTransition 订单已经支付过, 只追加流水, 不重复写状态历史
func (s *service) recordWithoutTransition(ctx context.Context, order domain.Order, p domain.Payment) (domain.Payment, error) {
	if !order.Status.HasBeenPaid() {
		return domain.Payment{}, order.Status.CheckTransition(domain.StatusPaid)
	}
	return s.repo.CreatePayment(ctx, p)
}

func (s *service) SetOrderStatus(ctx context.Context, orderID int64, toStatus string, actorID int64) (domain.StatusHistory, error) {
	to, err := domain.ParseOrderStatus(toStatus)
	if err != nil {
		return domain.StatusHistory{}, err
	}
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return domain.StatusHistory{}, err
	}
	if err = order.Status.CheckTransition(to); err != nil {
		return domain.StatusHistory{}, err
	}
	h, err := s.repo.UpdateStatus(ctx, domain.StatusHistory{
		OrderID: orderID,
		From:    order.Status,
		To:      to,
		ActorID: actorID,
	})
	if errors.Is(err, repository.ErrStatusChanged) {
		latest, er := s.repo.FindOrderByID(ctx, orderID)
		if er != nil {
			return domain.StatusHistory{}, er
		}
		if er = latest.Status.CheckTransition(to); er != nil {
			return domain.StatusHistory{}, er
		}
		return domain.StatusHistory{}, err
	}
	if err != nil {
		return domain.StatusHistory{}, err
	}
	s.publish(ctx, order, h)
	return h, nil
}

func (s *service) AllowedNextStatuses(status string) []string {
	st, err := domain.ParseOrderStatus(status)
	if err != nil {
		return []string{}
	}
	res := slice.Map(st.Next(), func(idx int, src domain.OrderStatus) string {
		return src.String()
	})
	sort.Strings(res)
	return res
}

// publish 状态已经提交, 发送失败只记录日志
func (s *service) publish(ctx context.Context, order domain.Order, h domain.StatusHistory) {
	err := s.producer.Produce(ctx, event.OrderStatusEvent{
		OrderID: order.ID,
		BuyerID: order.BuyerID,
		From:    h.From.String(),
		To:      h.To.String(),
		ActorID: h.ActorID,
		Ctime:   h.Ctime,
	})
	if err != nil {
		s.logger.Warn("发送订单状态变更事件失败",
			elog.FieldErr(err),
			elog.Int64("order_id", order.ID),
			elog.String("to", h.To.String()))
	}
}
