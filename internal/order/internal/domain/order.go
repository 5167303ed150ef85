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

import (
	"github.com/ecodeclub/storefront/internal/pkg/money"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64
	BuyerID     int64
	Status      OrderStatus
	TotalAmount decimal.Decimal
	Details     Details
	Items       []OrderItem
	Ctime       int64
	Utime       int64
}

// Details 结算时填写的联系人与收货信息, 只能在支付前修改
type Details struct {
	Contact  Contact
	Shipping Address
	Notes    string
}

type Contact struct {
	Name  string
	Email string
	Phone string
}

type Address struct {
	Line1    string
	Line2    string
	City     string
	Postcode string
	Country  string
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	SKU       string
	Name      string
	Quantity  int64
	// UnitPrice 下单时的单价快照
	UnitPrice decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return money.Mul(i.UnitPrice, i.Quantity)
}

// CartLine 购物袋里的一行
type CartLine struct {
	SKU      string
	Quantity int64
}
