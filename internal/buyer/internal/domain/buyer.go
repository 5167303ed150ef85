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

const (
	// GuestEmail 游客订单共用同一个买家, 用固定邮箱保证只会创建一次
	GuestEmail = "guest@fashionshop.local"
	GuestName  = "Guest"
)

// Identity 调用方身份, 由会话提供
type Identity struct {
	Authenticated bool
	Email         string
	DisplayName   string
}

// IsGuest 未登录或者没有可用邮箱都按照游客处理
func (i Identity) IsGuest() bool {
	return !i.Authenticated || strings.TrimSpace(i.Email) == ""
}

type Buyer struct {
	ID    int64
	Email string
	Name  string
	Ctime int64
	Utime int64
}

func (b Buyer) IsGuest() bool {
	return b.Email == GuestEmail
}
