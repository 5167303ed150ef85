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
	"gorm.io/gorm/clause"
)

type BuyerDAO interface {
	// Upsert 按邮箱插入, 冲突时只更新名称
	Upsert(ctx context.Context, b Buyer) (Buyer, error)
	// CreateIfAbsent 按邮箱插入, 冲突时什么都不做
	CreateIfAbsent(ctx context.Context, b Buyer) (Buyer, error)
	FindByEmail(ctx context.Context, email string) (Buyer, error)
}

type GORMBuyerDAO struct {
	db *egorm.Component
}

func NewGORMBuyerDAO(db *egorm.Component) BuyerDAO {
	return &GORMBuyerDAO{db: db}
}

func (g *GORMBuyerDAO) Upsert(ctx context.Context, b Buyer) (Buyer, error) {
	now := time.Now().UnixMilli()
	b.Ctime, b.Utime = now, now
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "utime"}),
	}).Create(&b).Error
	if err != nil {
		return Buyer{}, err
	}
	// 冲突更新时拿不到可靠的自增ID, 重新按邮箱查一次
	return g.FindByEmail(ctx, b.Email)
}

func (g *GORMBuyerDAO) CreateIfAbsent(ctx context.Context, b Buyer) (Buyer, error) {
	now := time.Now().UnixMilli()
	b.Ctime, b.Utime = now, now
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&b).Error
	if err != nil {
		return Buyer{}, err
	}
	return g.FindByEmail(ctx, b.Email)
}

func (g *GORMBuyerDAO) FindByEmail(ctx context.Context, email string) (Buyer, error) {
	var res Buyer
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&res).Error
	return res, err
}

type Buyer struct {
	Id    int64  `gorm:"primaryKey;autoIncrement;comment:买家自增ID"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_email;comment:买家邮箱,唯一标识"`
	Name  string `gorm:"type:varchar(255);not null;comment:展示名称"`
	Ctime int64
	Utime int64
}

func (Buyer) TableName() string {
	return "app_users"
}
