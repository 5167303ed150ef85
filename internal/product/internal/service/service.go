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
	"fmt"
	"strings"

	"github.com/ecodeclub/storefront/internal/product/internal/domain"
	"github.com/ecodeclub/storefront/internal/product/internal/repository"
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go Service
type Service interface {
	FindBySKU(ctx context.Context, sku string) (domain.Product, error)
	FindBySKUs(ctx context.Context, skus []string) (map[string]domain.Product, error)
	Save(ctx context.Context, p domain.Product) error
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindBySKU(ctx context.Context, sku string) (domain.Product, error) {
	p, err := s.repo.FindBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: sku=%s", err, sku)
	}
	return p, nil
}

func (s *service) FindBySKUs(ctx context.Context, skus []string) (map[string]domain.Product, error) {
	ps, err := s.repo.FindBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}
	res := make(map[string]domain.Product, len(ps))
	for _, p := range ps {
		res[p.SKU] = p
	}
	return res, nil
}

func (s *service) Save(ctx context.Context, p domain.Product) error {
	p.SKU = strings.TrimSpace(p.SKU)
	if p.SKU == "" {
		return fmt.Errorf("SKU为空")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("价格非法: %s", p.Price)
	}
	return s.repo.Save(ctx, p)
}
