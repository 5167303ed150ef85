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

	"github.com/ecodeclub/storefront/internal/buyer/internal/domain"
	"github.com/ecodeclub/storefront/internal/buyer/internal/repository"
)

//go:generate mockgen -source=./service.go -destination=../../mocks/buyer.mock.go -package=buyermocks Service
type Service interface {
	// ResolveBuyer 把调用方映射为买家记录, 登录用户按邮箱 upsert, 其余一律使用游客
	ResolveBuyer(ctx context.Context, id domain.Identity) (domain.Buyer, error)
}

type service struct {
	repo repository.BuyerRepository
}

func NewService(repo repository.BuyerRepository) Service {
	return &service{repo: repo}
}

func (s *service) ResolveBuyer(ctx context.Context, id domain.Identity) (domain.Buyer, error) {
	if id.IsGuest() {
		b, err := s.repo.CreateIfAbsent(ctx, domain.Buyer{
			Email: domain.GuestEmail,
			Name:  domain.GuestName,
		})
		if err != nil {
			return domain.Buyer{}, fmt.Errorf("获取游客买家失败: %w", err)
		}
		return b, nil
	}
	b, err := s.repo.Upsert(ctx, domain.Buyer{
		Email: strings.TrimSpace(id.Email),
		Name:  strings.TrimSpace(id.DisplayName),
	})
	if err != nil {
		return domain.Buyer{}, fmt.Errorf("同步买家信息失败: %w", err)
	}
	return b, nil
}
