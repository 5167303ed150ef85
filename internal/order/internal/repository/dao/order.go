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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrStatusChanged 条件更新没有命中, 订单状态已被并发修改
var ErrStatusChanged = errors.New("订单状态已被并发修改")

type OrderDAO interface {
	// CreateOrder 返回写入后的订单, 带上自增ID与创建时间
	CreateOrder(ctx context.Context, o Order, items []OrderItem) (Order, error)
	FindOrderByID(ctx context.Context, id int64) (Order, error)
	FindOrderItemsByOrderID(ctx context.Context, oid int64) ([]OrderItem, error)
	UpdateDetails(ctx context.Context, o Order, status string) error
	List(ctx context.Context, offset, limit int) ([]Order, error)
	Count(ctx context.Context) (int64, error)
	ListByStatusBefore(ctx context.Context, status string, ctime int64, offset, limit int) ([]Order, error)
	CountByStatusBefore(ctx context.Context, status string, ctime int64) (int64, error)

	// UpdateStatus 在一个事务里更新订单状态并追加状态历史
	UpdateStatus(ctx context.Context, h OrderStatusHistory) (OrderStatusHistory, error)
	CreatePayment(ctx context.Context, p Payment) (Payment, error)
	// CreatePaymentAndUpdateStatus 支付成功时使用, 支付流水, 订单状态, 状态历史同生共死
	CreatePaymentAndUpdateStatus(ctx context.Context, p Payment, h OrderStatusHistory) (Payment, OrderStatusHistory, error)
	FindPaymentsByOrderID(ctx context.Context, oid int64) ([]Payment, error)
	FindHistoriesByOrderID(ctx context.Context, oid int64) ([]OrderStatusHistory, error)
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (g *OrderGORMDAO) CreateOrder(ctx context.Context, o Order, items []OrderItem) (Order, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (g *OrderGORMDAO) FindOrderByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindOrderItemsByOrderID(ctx context.Context, oid int64) ([]OrderItem, error) {
	var res []OrderItem
	err := g.db.WithContext(ctx).Where("order_id = ?", oid).Order("id ASC").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) UpdateDetails(ctx context.Context, o Order, status string) error {
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", o.Id, status).
		Updates(map[string]any{
			"buyer_name":    o.BuyerName,
			"buyer_email":   o.BuyerEmail,
			"buyer_phone":   o.BuyerPhone,
			"ship_address1": o.ShipAddress1,
			"ship_address2": o.ShipAddress2,
			"ship_city":     o.ShipCity,
			"ship_postcode": o.ShipPostcode,
			"ship_country":  o.ShipCountry,
			"notes":         o.Notes,
			"utime":         time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (g *OrderGORMDAO) List(ctx context.Context, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id DESC").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&Order{}).Count(&res).Error
	return res, err
}

func (g *OrderGORMDAO) ListByStatusBefore(ctx context.Context, status string, ctime int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).
		Where("status = ? AND ctime <= ?", status, ctime).
		Offset(offset).Limit(limit).Order("ctime ASC").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) CountByStatusBefore(ctx context.Context, status string, ctime int64) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&Order{}).
		Where("status = ? AND ctime <= ?", status, ctime).Count(&res).Error
	return res, err
}

func (g *OrderGORMDAO) UpdateStatus(ctx context.Context, h OrderStatusHistory) (OrderStatusHistory, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return g.updateStatus(tx, &h)
	})
	return h, err
}

// updateStatus 以 from 状态为条件更新, 没有命中说明有人抢先一步
func (g *OrderGORMDAO) updateStatus(tx *gorm.DB, h *OrderStatusHistory) error {
	now := time.Now().UnixMilli()
	res := tx.Model(&Order{}).
		Where("id = ? AND status = ?", h.OrderId, h.FromStatus).
		Updates(map[string]any{
			"status": h.ToStatus,
			"utime":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	h.Ctime = now
	return tx.Create(h).Error
}

func (g *OrderGORMDAO) CreatePayment(ctx context.Context, p Payment) (Payment, error) {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	err := g.db.WithContext(ctx).Create(&p).Error
	return p, err
}

func (g *OrderGORMDAO) CreatePaymentAndUpdateStatus(ctx context.Context, p Payment, h OrderStatusHistory) (Payment, OrderStatusHistory, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		p.Ctime, p.Utime = now, now
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return g.updateStatus(tx, &h)
	})
	return p, h, err
}

func (g *OrderGORMDAO) FindPaymentsByOrderID(ctx context.Context, oid int64) ([]Payment, error) {
	var res []Payment
	err := g.db.WithContext(ctx).Where("order_id = ?", oid).Order("id ASC").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindHistoriesByOrderID(ctx context.Context, oid int64) ([]OrderStatusHistory, error) {
	var res []OrderStatusHistory
	err := g.db.WithContext(ctx).Where("order_id = ?", oid).Order("id ASC").Find(&res).Error
	return res, err
}

type Order struct {
	Id           int64           `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	BuyerId      sql.NullInt64   `gorm:"index:idx_buyer_id;comment:买家ID"`
	Status       string          `gorm:"type:varchar(16);not null;index:idx_status_ctime,priority:1;comment:订单状态 pending/paid/shipped/delivered/cancelled"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:订单总金额"`
	BuyerName    string          `gorm:"type:varchar(255);not null;comment:联系人"`
	BuyerEmail   string          `gorm:"type:varchar(255);not null;comment:联系邮箱"`
	BuyerPhone   string          `gorm:"type:varchar(64);not null;comment:联系电话"`
	ShipAddress1 string          `gorm:"column:ship_address1;type:varchar(255);not null;comment:收货地址1"`
	ShipAddress2 string          `gorm:"column:ship_address2;type:varchar(255);not null;comment:收货地址2"`
	ShipCity     string          `gorm:"type:varchar(128);not null;comment:城市"`
	ShipPostcode string          `gorm:"type:varchar(32);not null;comment:邮编"`
	ShipCountry  string          `gorm:"type:varchar(64);not null;comment:国家"`
	Notes        string          `gorm:"type:text;comment:备注"`
	Items        []OrderItem     `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`
	Ctime        int64           `gorm:"index:idx_status_ctime,priority:2"`
	Utime        int64
}

type OrderItem struct {
	Id        int64           `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64           `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId int64           `gorm:"not null;comment:商品自增ID"`
	SKU       string          `gorm:"column:sku;type:varchar(64);not null;comment:SKU编码"`
	Name      string          `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Quantity  int64           `gorm:"not null;comment:购买数量"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
	Ctime     int64
	Utime     int64
}

type Payment struct {
	Id          int64           `gorm:"primaryKey;autoIncrement;comment:支付流水自增ID"`
	OrderId     int64           `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	Provider    string          `gorm:"type:varchar(32);not null;comment:支付渠道 mock/stripe"`
	Method      string          `gorm:"type:varchar(16);not null;comment:支付方式 card/paypal/cod"`
	Status      string          `gorm:"type:varchar(16);not null;comment:支付状态 pending/successful/failed"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:支付金额"`
	ProviderRef sql.NullString  `gorm:"type:varchar(255);index:idx_provider_ref;comment:渠道交易号"`
	Ctime       int64
	Utime       int64
}

type OrderStatusHistory struct {
	Id         int64         `gorm:"primaryKey;autoIncrement;comment:状态历史自增ID"`
	OrderId    int64         `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	FromStatus string        `gorm:"type:varchar(16);not null;comment:变更前状态"`
	ToStatus   string        `gorm:"type:varchar(16);not null;comment:变更后状态"`
	ChangedBy  sql.NullInt64 `gorm:"comment:操作人, 为空表示系统"`
	Ctime      int64
}
