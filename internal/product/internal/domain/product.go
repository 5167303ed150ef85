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

package domain

import "github.com/shopspring/decimal"

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

type Product struct {
	ID   int64
	SKU  string
	Name string
	Desc string
	// Price 商品目录里的原始价格, 可能超过两位小数, 下单时再取整
	Price  decimal.Decimal
	Stock  int64
	Status Status
	Ctime  int64
	Utime  int64
}

func (p Product) IsActive() bool {
	return p.Status == StatusOnShelf
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// Purchasable 上架且有库存才能加入购物袋
func (p Product) Purchasable() bool {
	return p.IsActive() && p.InStock()
}
