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

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStatus     = errors.New("未知订单状态")
	ErrIllegalTransition = errors.New("非法的订单状态变更")
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus 忽略大小写和首尾空白
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Next 允许流转到的下一个状态, 终态和未知状态返回空
// pending -> paid | cancelled, paid -> shipped, shipped -> delivered
func (s OrderStatus) Next() []OrderStatus {
	switch s {
	case StatusPending:
		return []OrderStatus{StatusCancelled, StatusPaid}
	case StatusPaid:
		return []OrderStatus{StatusShipped}
	case StatusShipped:
		return []OrderStatus{StatusDelivered}
	default:
		return nil
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(s.Next()) == 0
}

func (s OrderStatus) CanTransitTo(to OrderStatus) bool {
	for _, n := range s.Next() {
		if n == to {
			return true
		}
	}
	return false
}

// CheckTransition 错误信息里带上 from -> to
func (s OrderStatus) CheckTransition(to OrderStatus) error {
	if !s.CanTransitTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, to)
	}
	return nil
}

// HasBeenPaid 已支付以及之后的发货, 送达都算
func (s OrderStatus) HasBeenPaid() bool {
	return s == StatusPaid || s == StatusShipped || s == StatusDelivered
}

type StatusHistory struct {
	ID      int64
	OrderID int64
	From    OrderStatus
	To      OrderStatus
	// ActorID 0 表示系统触发, 比如支付回调或定时任务
	ActorID int64
	Ctime   int64
}
