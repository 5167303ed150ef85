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
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/repository/dao"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("商品不存在")

type ProductRepository interface {
	FindBySKU(ctx context.Context, sku string) (domain.Product, error)
	FindBySKUs(ctx context.Context, skus []string) ([]domain.Product, error)
	Save(ctx context.Context, p domain.Product) error
}

type productRepository struct {
	dao dao.ProductDAO
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{dao: d}
}

func (r *productRepository) FindBySKU(ctx context.Context, sku string) (domain.Product, error) {
	p, err := r.dao.FindBySKU(ctx, sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return r.toDomain(p), nil
}

func (r *productRepository) FindBySKUs(ctx context.Context, skus []string) ([]domain.Product, error) {
	ps, err := r.dao.FindBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.Product) domain.Product {
		return r.toDomain(src)
	}), nil
}

func (r *productRepository) Save(ctx context.Context, p domain.Product) error {
	return r.dao.Upsert(ctx, dao.Product{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Desc,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      p.Status.ToUint8(),
	})
}

func (r *productRepository) toDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:     p.Id,
		SKU:    p.SKU,
		Name:   p.Name,
		Desc:   p.Description,
		Price:  p.Price,
		Stock:  p.Stock,
		Status: domain.Status(p.Status),
		Ctime:  p.Ctime,
		Utime:  p.Utime,
	}
}
