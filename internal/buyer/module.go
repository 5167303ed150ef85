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

package buyer

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/buyer/internal/domain"
	"github.com/ecodeclub/storefront/internal/buyer/internal/service"
)

type (
	Service  = service.Service
	Buyer    = domain.Buyer
	Identity = domain.Identity
)

const GuestEmail = domain.GuestEmail

type Module struct {
	Svc Service
}

// IdentityFromContext 从会话中提取调用方身份, 没有会话的请求视为游客
func IdentityFromContext(ctx *ginx.Context) Identity {
	sess, err := session.Get(ctx)
	if err != nil || sess == nil {
		return Identity{}
	}
	return IdentityFromSession(sess)
}

func IdentityFromSession(sess session.Session) Identity {
	claims := sess.Claims()
	return Identity{
		Authenticated: claims.Uid > 0,
		Email:         claims.Get("email").StringOrDefault(""),
		DisplayName:   claims.Get("name").StringOrDefault(""),
	}
}
