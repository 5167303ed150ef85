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

	"github.com/ecodeclub/storefront/internal/buyer/internal/domain"
	"github.com/ecodeclub/storefront/internal/buyer/internal/repository/dao"
)

type BuyerRepository interface {
	Upsert(ctx context.Context, b domain.Buyer) (domain.Buyer, error)
	CreateIfAbsent(ctx context.Context, b domain.Buyer) (domain.Buyer, error)
}

type buyerRepository struct {
	dao dao.BuyerDAO
}

func NewBuyerRepository(d dao.BuyerDAO) BuyerRepository {
	return &buyerRepository{dao: d}
}

func (r *buyerRepository) Upsert(ctx context.Context, b domain.Buyer) (domain.Buyer, error) {
	res, err := r.dao.Upsert(ctx, r.toEntity(b))
	if err != nil {
		return domain.Buyer{}, err
	}
	return r.toDomain(res), nil
}

func (r *buyerRepository) CreateIfAbsent(ctx context.Context, b domain.Buyer) (domain.Buyer, error) {
	res, err := r.dao.CreateIfAbsent(ctx, r.toEntity(b))
	if err != nil {
		return domain.Buyer{}, err
	}
	return r.toDomain(res), nil
}

func (r *buyerRepository) toEntity(b domain.Buyer) dao.Buyer {
	return dao.Buyer{
		Id:    b.ID,
		Email: b.Email,
		Name:  b.Name,
	}
}

func (r *buyerRepository) toDomain(b dao.Buyer) domain.Buyer {
	return domain.Buyer{
		ID:    b.Id,
		Email: b.Email,
		Name:  b.Name,
		Ctime: b.Ctime,
		Utime: b.Utime,
	}
}
