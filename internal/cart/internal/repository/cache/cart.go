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

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/storefront/internal/cart/internal/domain"
)

type CartCache interface {
	// Get 不存在时返回空购物袋
	Get(ctx context.Context, cartID string) (domain.Cart, error)
	Set(ctx context.Context, cartID string, c domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type CartECache struct {
	cache      ecache.Cache
	expiration time.Duration
}

func NewCartECache(c ecache.Cache) CartCache {
	return &CartECache{
		cache: &ecache.NamespaceCache{
			Namespace: "cart:",
			C:         c,
		},
		expiration: time.Hour * 24 * 7,
	}
}

func (c *CartECache) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	var res domain.Cart
	val := c.cache.Get(ctx, cartID)
	if val.KeyNotFound() {
		return res, nil
	}
	err := val.JSONScan(&res)
	return res, err
}

func (c *CartECache) Set(ctx context.Context, cartID string, cart domain.Cart) error {
	if cart.IsEmpty() {
		return c.Delete(ctx, cartID)
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, cartID, data, c.expiration)
}

func (c *CartECache) Delete(ctx context.Context, cartID string) error {
	_, err := c.cache.Delete(ctx, cartID)
	return err
}
