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

package event

import (
	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/shopspring/decimal"
)

const SyncProductTopic = "product_sync_events"

// ProductEvent 上游商品目录同步过来的商品快照
type ProductEvent struct {
	SKU    string          `json:"sku"`
	Name   string          `json:"name"`
	Desc   string          `json:"desc"`
	Price  decimal.Decimal `json:"price"`
	Stock  int64           `json:"stock"`
	Active bool            `json:"active"`
}

func (e ProductEvent) ToDomain() domain.Product {
	status := domain.StatusOffShelf
	if e.Active {
		status = domain.StatusOnShelf
	}
	return domain.Product{
		SKU:    e.SKU,
		Name:   e.Name,
		Desc:   e.Desc,
		Price:  e.Price,
		Stock:  e.Stock,
		Status: status,
	}
}
