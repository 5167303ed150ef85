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

import "strings"

// Cart 购物袋, 保持加入顺序, 数量总是正数
type Cart struct {
	Lines []Line `json:"lines"`
}

type Line struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"qty"`
}

// Add 合并到已有行, n 非正数时忽略
func (c *Cart) Add(sku string, n int64) {
	sku = strings.TrimSpace(sku)
	if sku == "" || n <= 0 {
		return
	}
	if idx := c.index(sku); idx >= 0 {
		c.Lines[idx].Quantity += n
		return
	}
	c.Lines = append(c.Lines, Line{SKU: sku, Quantity: n})
}

// Set 设置为指定数量, 非正数等价于移除
func (c *Cart) Set(sku string, n int64) {
	sku = strings.TrimSpace(sku)
	if n <= 0 {
		c.Remove(sku)
		return
	}
	if idx := c.index(sku); idx >= 0 {
		c.Lines[idx].Quantity = n
		return
	}
	if sku != "" {
		c.Lines = append(c.Lines, Line{SKU: sku, Quantity: n})
	}
}

func (c *Cart) Remove(sku string) {
	idx := c.index(strings.TrimSpace(sku))
	if idx < 0 {
		return
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) Quantity(sku string) int64 {
	if idx := c.index(sku); idx >= 0 {
		return c.Lines[idx].Quantity
	}
	return 0
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Len() int {
	return len(c.Lines)
}

func (c Cart) index(sku string) int {
	for i, l := range c.Lines {
		if l.SKU == sku {
			return i
		}
	}
	return -1
}
