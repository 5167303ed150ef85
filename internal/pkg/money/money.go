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

package money

import "github.com/shopspring/decimal"

// Places 货币精度, 统一保留两位小数
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round 四舍五入到分, 0.005 进位为 0.01
// 只处理非负金额, decimal 的 Round 是远离零取整, 在非负区间与四舍五入一致
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Mul 计算行金额, 单价乘以数量之后再取整一次
func Mul(unit decimal.Decimal, quantity int64) decimal.Decimal {
	return Round(unit.Mul(decimal.NewFromInt(quantity)))
}

// Sum 逐项累加并在每一步之后取整
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = Round(total.Add(a))
	}
	return total
}

// ToMinorUnits 转换为以分为单位的整数, 支付渠道需要
func ToMinorUnits(d decimal.Decimal) int64 {
	return Round(d).Mul(hundred).IntPart()
}
