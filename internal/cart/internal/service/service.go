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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/cart/internal/domain"
	"github.com/ecodeclub/storefront/internal/cart/internal/repository/cache"
	"github.com/ecodeclub/storefront/internal/pkg/money"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/shopspring/decimal"
)

var ErrNotPurchasable = errors.New("商品已下架或无库存")

//go:generate mockgen -source=./service.go -package=cartmocks -destination=../../mocks/cart.mock.go Service
type Service interface {
	Get(ctx context.Context, cartID string) (domain.Cart, error)
	// Add 加入一件, 商品必须上架且有库存
	Add(ctx context.Context, cartID, sku string) (domain.Cart, error)
	SetQuantity(ctx context.Context, cartID, sku string, qty int64) (domain.Cart, error)
	Remove(ctx context.Context, cartID, sku string) (domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
	View(ctx context.Context, cartID string) (domain.View, error)
}

type service struct {
	cache      cache.CartCache
	productSvc product.Service
}

func NewService(c cache.CartCache, productSvc product.Service) Service {
	return &service{cache: c, productSvc: productSvc}
}

func (s *service) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	if cartID == "" {
		return domain.Cart{}, nil
	}
	return s.cache.Get(ctx, cartID)
}

func (s *service) Add(ctx context.Context, cartID, sku string) (domain.Cart, error) {
	p, err := s.productSvc.FindBySKU(ctx, sku)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.Purchasable() {
		return domain.Cart{}, fmt.Errorf("%w: sku=%s", ErrNotPurchasable, sku)
	}
	return s.update(ctx, cartID, func(c *domain.Cart) {
		c.Add(p.SKU, 1)
	})
}

func (s *service) SetQuantity(ctx context.Context, cartID, sku string, qty int64) (domain.Cart, error) {
	return s.update(ctx, cartID, func(c *domain.Cart) {
		c.Set(sku, qty)
	})
}

func (s *service) Remove(ctx context.Context, cartID, sku string) (domain.Cart, error) {
	return s.update(ctx, cartID, func(c *domain.Cart) {
		c.Remove(sku)
	})
}

func (s *service) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}
	return s.cache.Delete(ctx, cartID)
}

// update 读改写不是原子的, 同一个购物袋只会被它自己的会话修改
func (s *service) update(ctx context.Context, cartID string, fn func(c *domain.Cart)) (domain.Cart, error) {
	c, err := s.cache.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	fn(&c)
	return c, s.cache.Set(ctx, cartID, c)
}

// View 计价规则和下单一致, 找不到的商品不展示
func (s *service) View(ctx context.Context, cartID string) (domain.View, error) {
	c, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.View{}, err
	}
	skus := slice.Map(c.Lines, func(idx int, src domain.Line) string {
		return src.SKU
	})
	products, err := s.productSvc.FindBySKUs(ctx, skus)
	if err != nil {
		return domain.View{}, err
	}
	res := domain.View{Rows: make([]domain.Row, 0, len(c.Lines))}
	lineTotals := make([]decimal.Decimal, 0, len(c.Lines))
	for _, l := range c.Lines {
		p, ok := products[l.SKU]
		if !ok {
			continue
		}
		unit := money.Round(p.Price)
		row := domain.Row{
			SKU:       l.SKU,
			Name:      p.Name,
			Quantity:  l.Quantity,
			UnitPrice: unit,
			LineTotal: money.Mul(unit, l.Quantity),
		}
		res.Rows = append(res.Rows, row)
		lineTotals = append(lineTotals, row.LineTotal)
	}
	res.Subtotal = money.Sum(lineTotals...)
	return res, nil
}
