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
	"time"

	"github.com/ego-component/egorm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type ProductDAO interface {
	FindBySKU(ctx context.Context, sku string) (Product, error)
	FindBySKUs(ctx context.Context, skus []string) ([]Product, error)
	Upsert(ctx context.Context, p Product) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

// FindBySKU 不过滤状态, 下单计价只要求商品存在
func (d *ProductGORMDAO) FindBySKU(ctx context.Context, sku string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("sku = ?", sku).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindBySKUs(ctx context.Context, skus []string) ([]Product, error) {
	var res []Product
	if len(skus) == 0 {
		return res, nil
	}
	err := d.db.WithContext(ctx).Where("sku IN ?", skus).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Upsert(ctx context.Context, p Product) error {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "stock", "status", "utime"}),
	}).Create(&p).Error
}

type Product struct {
	Id          int64           `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SKU         string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:uniq_sku;comment:SKU编码"`
	Name        string          `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string          `gorm:"not null;comment:商品描述"`
	Price       decimal.Decimal `gorm:"type:decimal(12,4);not null;comment:价格"`
	Stock       int64           `gorm:"not null;comment:库存数量"`
	Status      uint8           `gorm:"type:tinyint unsigned;not null;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{})
}
