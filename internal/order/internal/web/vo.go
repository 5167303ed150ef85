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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/pkg/money"
)

type CheckoutReq struct {
	// RequestID 可选, 十分钟内重复提交会被拒绝
	RequestID string `json:"requestID"`
}

type DetailsReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
	Notes    string `json:"notes"`
}

func (r DetailsReq) toDomain() domain.Details {
	return domain.Details{
		Contact: domain.Contact{
			Name:  r.Name,
			Email: r.Email,
			Phone: r.Phone,
		},
		Shipping: domain.Address{
			Line1:    r.Line1,
			Line2:    r.Line2,
			City:     r.City,
			Postcode: r.Postcode,
			Country:  r.Country,
		},
		Notes: r.Notes,
	}
}

type UpdateStatusReq struct {
	ToStatus string `json:"toStatus"`
}

type ListOrdersReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type NextStatusesResp struct {
	Status string   `json:"status"`
	Next   []string `json:"next"`
}

type Order struct {
	ID          int64           `json:"id"`
	BuyerID     int64           `json:"buyerID"`
	Status      string          `json:"status"`
	TotalAmount string          `json:"totalAmount"`
	Details     DetailsReq      `json:"details"`
	Items       []OrderItem     `json:"items,omitempty"`
	Payments    []Payment       `json:"payments,omitempty"`
	Histories   []StatusHistory `json:"histories,omitempty"`
	Ctime       int64           `json:"ctime"`
	Utime       int64           `json:"utime"`
}

type OrderItem struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type Payment struct {
	ID          int64  `json:"id"`
	Provider    string `json:"provider"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	ProviderRef string `json:"providerRef"`
	Ctime       int64  `json:"ctime"`
}

type StatusHistory struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ActorID int64  `json:"actorID"`
	Ctime   int64  `json:"ctime"`
}

func toOrderVO(o domain.Order) Order {
	return Order{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount.StringFixed(money.Places),
		Details: DetailsReq{
			Name:     o.Details.Contact.Name,
			Email:    o.Details.Contact.Email,
			Phone:    o.Details.Contact.Phone,
			Line1:    o.Details.Shipping.Line1,
			Line2:    o.Details.Shipping.Line2,
			City:     o.Details.Shipping.City,
			Postcode: o.Details.Shipping.Postcode,
			Country:  o.Details.Shipping.Country,
			Notes:    o.Details.Notes,
		},
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				SKU:       src.SKU,
				Name:      src.Name,
				Quantity:  src.Quantity,
				UnitPrice: src.UnitPrice.StringFixed(money.Places),
				LineTotal: src.LineTotal().StringFixed(money.Places),
			}
		}),
		Ctime: o.Ctime,
		Utime: o.Utime,
	}
}

func toPaymentVO(src domain.Payment) Payment {
	return Payment{
		ID:          src.ID,
		Provider:    src.Provider,
		Method:      string(src.Method),
		Status:      string(src.Status),
		Amount:      src.Amount.StringFixed(money.Places),
		ProviderRef: src.ProviderRef,
		Ctime:       src.Ctime,
	}
}

func toStatusHistoryVO(src domain.StatusHistory) StatusHistory {
	return StatusHistory{
		From:    src.From.String(),
		To:      src.To.String(),
		ActorID: src.ActorID,
		Ctime:   src.Ctime,
	}
}
