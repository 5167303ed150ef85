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

package config

type StorefrontConfig struct {
	DB     DBConfig     `yaml:"mysql"`
	Stripe StripeConfig `yaml:"stripe"`
	Order  OrderConfig  `yaml:"order"`
}

type DBConfig struct {
	DSN string `yaml:"dsn"`
}

type StripeConfig struct {
	APIKey        string `yaml:"apiKey"`
	WebhookSecret string `yaml:"webhookSecret"`
	// Currency ISO 货币代码, 小写, 比如 gbp
	Currency string `yaml:"currency"`
	// SuccessURL 支付完成后 Stripe 跳回的地址, 需要指向 /pay/return
	SuccessURL string `yaml:"successURL"`
	// CancelURL 中的 {ORDER_ID} 会替换成订单号
	CancelURL string `yaml:"cancelURL"`
}

// Enabled 没有配置密钥时只能使用模拟支付
func (c StripeConfig) Enabled() bool {
	return c.APIKey != ""
}

type OrderConfig struct {
	// StaleMinutes 待支付订单超过这个时间会被自动取消
	StaleMinutes int64 `yaml:"staleMinutes"`
	BatchSize    int   `yaml:"batchSize"`
}

func (c OrderConfig) WithDefaults() OrderConfig {
	if c.StaleMinutes <= 0 {
		c.StaleMinutes = 1440
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	return c
}
