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
	"errors"
	"testing"

	"github.com/ecodeclub/storefront/internal/buyer"
	buyermocks "github.com/ecodeclub/storefront/internal/buyer/mocks"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/event"
	evtmocks "github.com/ecodeclub/storefront/internal/order/internal/event/mocks"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	repomocks "github.com/ecodeclub/storefront/internal/order/internal/repository/mocks"
	"github.com/ecodeclub/storefront/internal/product"
	productmocks "github.com/ecodeclub/storefront/internal/product/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	repo     *repomocks.MockOrderRepository
	buyer    *buyermocks.MockService
	product  *productmocks.MockService
	producer *evtmocks.MockOrderStatusEventProducer
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:     repomocks.NewMockOrderRepository(ctrl),
		buyer:    buyermocks.NewMockService(ctrl),
		product:  productmocks.NewMockService(ctrl),
		producer: evtmocks.NewMockOrderStatusEventProducer(ctrl),
	}
}

func (m mocks) service() Service {
	return NewService(m.repo, m.buyer, m.product, m.producer)
}

func TestService_CreateOrderFromCart(t *testing.T) {
	testCases := []struct {
		name      string
		identity  buyer.Identity
		lines     []domain.CartLine
		mock      func(m mocks)
		wantTotal string
		wantUnits []string
		wantErr   error
	}{
		{
			name:     "单价与行金额分别取整",
			identity: buyer.Identity{Authenticated: true, Email: "alice@example.com", DisplayName: "Alice"},
			lines:    []domain.CartLine{{SKU: "TEE-001", Quantity: 2}},
			mock: func(m mocks) {
				m.product.EXPECT().FindBySKUs(gomock.Any(), []string{"TEE-001"}).Return(map[string]product.Product{
					"TEE-001": {ID: 1, SKU: "TEE-001", Name: "Tee", Price: decimal.RequireFromString("9.995")},
				}, nil)
				m.buyer.EXPECT().ResolveBuyer(gomock.Any(), buyer.Identity{
					Authenticated: true, Email: "alice@example.com", DisplayName: "Alice",
				}).Return(buyer.Buyer{ID: 7, Email: "alice@example.com"}, nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, o domain.Order) (domain.Order, error) {
						o.ID = 11
						return o, nil
					})
			},
			wantTotal: "20.00",
			wantUnits: []string{"10.00"},
		},
		{
			name:     "多行逐行累加",
			identity: buyer.Identity{},
			lines: []domain.CartLine{
				{SKU: " TEE-001 ", Quantity: 1},
				{SKU: "PIN-001", Quantity: 3},
				{SKU: "CAP-001", Quantity: 0},
			},
			mock: func(m mocks) {
				m.product.EXPECT().FindBySKUs(gomock.Any(), []string{"TEE-001", "PIN-001"}).Return(map[string]product.Product{
					"TEE-001": {ID: 1, SKU: "TEE-001", Price: decimal.RequireFromString("9.995")},
					"PIN-001": {ID: 2, SKU: "PIN-001", Price: decimal.RequireFromString("0.333")},
				}, nil)
				m.buyer.EXPECT().ResolveBuyer(gomock.Any(), buyer.Identity{}).
					Return(buyer.Buyer{ID: 1, Email: buyer.GuestEmail}, nil)
				m.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, o domain.Order) (domain.Order, error) {
						o.ID = 12
						return o, nil
					})
			},
			wantTotal: "10.99",
			wantUnits: []string{"10.00", "0.33"},
		},
		{
			name:     "空购物袋",
			identity: buyer.Identity{},
			lines:    []domain.CartLine{{SKU: "TEE-001", Quantity: 0}, {SKU: "CAP-001", Quantity: -1}},
			mock:     func(m mocks) {},
			wantErr:  ErrEmptyCart,
		},
		{
			name:     "空白SKU按未知商品处理",
			identity: buyer.Identity{},
			lines:    []domain.CartLine{{SKU: " ", Quantity: 1}},
			mock: func(m mocks) {
				m.product.EXPECT().FindBySKUs(gomock.Any(), []string{""}).
					Return(map[string]product.Product{}, nil)
			},
			wantErr: product.ErrProductNotFound,
		},
		{
			name:     "未知商品不写入任何数据",
			identity: buyer.Identity{},
			lines:    []domain.CartLine{{SKU: "TEE-001", Quantity: 1}, {SKU: "NOPE", Quantity: 1}},
			mock: func(m mocks) {
				m.product.EXPECT().FindBySKUs(gomock.Any(), []string{"TEE-001", "NOPE"}).Return(map[string]product.Product{
					"TEE-001": {ID: 1, SKU: "TEE-001", Price: decimal.RequireFromString("10")},
				}, nil)
			},
			wantErr: product.ErrProductNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.mock(m)
			o, err := m.service().CreateOrderFromCart(context.Background(), tc.identity, tc.lines)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, domain.StatusPending, o.Status)
			assert.Equal(t, tc.wantTotal, o.TotalAmount.StringFixed(2))
			require.Len(t, o.Items, len(tc.wantUnits))
			for i, u := range tc.wantUnits {
				assert.Equal(t, u, o.Items[i].UnitPrice.StringFixed(2))
			}
		})
	}
}

func TestService_RecordPayment(t *testing.T) {
	successful := domain.Payment{
		OrderID:     11,
		Provider:    "stripe",
		Method:      domain.PaymentMethodCard,
		Status:      domain.PaymentStatusSuccessful,
		Amount:      decimal.RequireFromString("19.999"),
		ProviderRef: "pi_123",
	}
	testCases := []struct {
		name    string
		payment domain.Payment
		mock    func(m mocks)
		wantErr error
	}{
		{
			name:    "支付方式非法",
			payment: domain.Payment{OrderID: 11, Provider: "mock", Method: "cash", Status: domain.PaymentStatusSuccessful},
			mock:    func(m mocks) {},
			wantErr: domain.ErrInvalidPaymentMethod,
		},
		{
			name:    "支付状态非法",
			payment: domain.Payment{OrderID: 11, Provider: "mock", Method: domain.PaymentMethodCard, Status: "done"},
			mock:    func(m mocks) {},
			wantErr: domain.ErrInvalidPaymentStatus,
		},
		{
			name: "金额为负",
			payment: domain.Payment{OrderID: 11, Provider: "mock", Method: domain.PaymentMethodCard,
				Status: domain.PaymentStatusFailed, Amount: decimal.RequireFromString("-1")},
			mock:    func(m mocks) {},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "支付渠道为空",
			payment: domain.Payment{OrderID: 11, Provider: " ", Method: domain.PaymentMethodCard, Status: domain.PaymentStatusFailed},
			mock:    func(m mocks) {},
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "订单不存在",
			payment: successful,
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).Return(domain.Order{}, repository.ErrOrderNotFound)
			},
			wantErr: repository.ErrOrderNotFound,
		},
		{
			name: "失败的支付只记流水",
			payment: domain.Payment{OrderID: 11, Provider: "mock", Method: domain.PaymentMethodCard,
				Status: domain.PaymentStatusFailed, Amount: decimal.RequireFromString("20")},
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil)
				m.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, p domain.Payment) (domain.Payment, error) {
						p.ID = 1
						return p, nil
					})
			},
		},
		{
			name:    "支付成功推进到已支付",
			payment: successful,
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, BuyerID: 7, Status: domain.StatusPending}, nil)
				m.repo.EXPECT().CreatePaymentAndUpdateStatus(gomock.Any(), gomock.Any(),
					domain.StatusHistory{OrderID: 11, From: domain.StatusPending, To: domain.StatusPaid}).
					DoAndReturn(func(ctx context.Context, p domain.Payment, h domain.StatusHistory) (domain.Payment, domain.StatusHistory, error) {
						if p.Amount.StringFixed(2) != "20.00" || p.Amount.Exponent() < -2 {
							return domain.Payment{}, domain.StatusHistory{}, errors.New("金额没有取整")
						}
						p.ID = 2
						h.ID, h.Ctime = 3, 100
						return p, h, nil
					})
				m.producer.EXPECT().Produce(gomock.Any(), event.OrderStatusEvent{
					OrderID: 11, BuyerID: 7, From: "pending", To: "paid", Ctime: 100,
				}).Return(nil)
			},
		},
		{
			name:    "事件发送失败不影响结果",
			payment: successful,
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, BuyerID: 7, Status: domain.StatusPending}, nil)
				m.repo.EXPECT().CreatePaymentAndUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, p domain.Payment, h domain.StatusHistory) (domain.Payment, domain.StatusHistory, error) {
						p.ID = 2
						return p, h, nil
					})
				m.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(errors.New("mock mq error"))
			},
		},
		{
			name:    "已支付订单只追加流水",
			payment: successful,
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusShipped}, nil)
				m.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, p domain.Payment) (domain.Payment, error) {
						p.ID = 4
						return p, nil
					})
			},
		},
		{
			name:    "已取消订单不能支付成功",
			payment: successful,
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusCancelled}, nil)
			},
			wantErr: domain.ErrIllegalTransition,
		},
		{
			name:    "并发支付后只追加流水",
			payment: successful,
			mock: func(m mocks) {
				gomock.InOrder(
					m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
						Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil),
					m.repo.EXPECT().CreatePaymentAndUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(domain.Payment{}, domain.StatusHistory{}, repository.ErrStatusChanged),
					m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
						Return(domain.Order{ID: 11, Status: domain.StatusPaid}, nil),
					m.repo.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
						DoAndReturn(func(ctx context.Context, p domain.Payment) (domain.Payment, error) {
							p.ID = 5
							return p, nil
						}),
				)
			},
		},
		{
			name:    "并发取消后支付失败",
			payment: successful,
			mock: func(m mocks) {
				gomock.InOrder(
					m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
						Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil),
					m.repo.EXPECT().CreatePaymentAndUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(domain.Payment{}, domain.StatusHistory{}, repository.ErrStatusChanged),
					m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
						Return(domain.Order{ID: 11, Status: domain.StatusCancelled}, nil),
				)
			},
			wantErr: domain.ErrIllegalTransition,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.mock(m)
			p, err := m.service().RecordPayment(context.Background(), tc.payment)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.True(t, p.ID > 0)
			assert.Equal(t, tc.payment.OrderID, p.OrderID)
		})
	}
}

func TestService_SetOrderStatus(t *testing.T) {
	testCases := []struct {
		name     string
		toStatus string
		mock     func(m mocks)
		wantTo   domain.OrderStatus
		wantErr  error
	}{
		{
			name:     "已支付到已发货",
			toStatus: " Shipped ",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, BuyerID: 7, Status: domain.StatusPaid}, nil)
				m.repo.EXPECT().UpdateStatus(gomock.Any(), domain.StatusHistory{
					OrderID: 11, From: domain.StatusPaid, To: domain.StatusShipped, ActorID: 3,
				}).DoAndReturn(func(ctx context.Context, h domain.StatusHistory) (domain.StatusHistory, error) {
					h.ID, h.Ctime = 1, 100
					return h, nil
				})
				m.producer.EXPECT().Produce(gomock.Any(), event.OrderStatusEvent{
					OrderID: 11, BuyerID: 7, From: "paid", To: "shipped", ActorID: 3, Ctime: 100,
				}).Return(nil)
			},
			wantTo: domain.StatusShipped,
		},
		{
			name:     "待支付不能直接发货",
			toStatus: "shipped",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil)
			},
			wantErr: domain.ErrIllegalTransition,
		},
		{
			name:     "终态不能再变更",
			toStatus: "pending",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusDelivered}, nil)
			},
			wantErr: domain.ErrIllegalTransition,
		},
		{
			name:     "未知状态",
			toStatus: "lost",
			mock:     func(m mocks) {},
			wantErr:  domain.ErrUnknownStatus,
		},
		{
			name:     "订单不存在",
			toStatus: "cancelled",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{}, repository.ErrOrderNotFound)
			},
			wantErr: repository.ErrOrderNotFound,
		},
		{
			name:     "并发支付后取消失败",
			toStatus: "cancelled",
			mock: func(m mocks) {
				gomock.InOrder(
					m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
						Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil),
					m.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).
						Return(domain.StatusHistory{}, repository.ErrStatusChanged),
					m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
						Return(domain.Order{ID: 11, Status: domain.StatusPaid}, nil),
				)
			},
			wantErr: domain.ErrIllegalTransition,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.mock(m)
			h, err := m.service().SetOrderStatus(context.Background(), 11, tc.toStatus, 3)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantTo, h.To)
		})
	}
}

func TestService_UpdateDetails(t *testing.T) {
	details := domain.Details{Contact: domain.Contact{Name: "Alice"}}
	testCases := []struct {
		name    string
		mock    func(m mocks)
		wantErr error
	}{
		{
			name: "待支付可以修改",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil)
				m.repo.EXPECT().UpdateDetails(gomock.Any(), int64(11), details).Return(nil)
			},
		},
		{
			name: "已支付不能修改",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusPaid}, nil)
			},
			wantErr: ErrOrderNotPending,
		},
		{
			name: "修改时被并发支付",
			mock: func(m mocks) {
				m.repo.EXPECT().FindOrderByID(gomock.Any(), int64(11)).
					Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil)
				m.repo.EXPECT().UpdateDetails(gomock.Any(), int64(11), details).Return(repository.ErrStatusChanged)
			},
			wantErr: ErrOrderNotPending,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newMocks(ctrl)
			tc.mock(m)
			err := m.service().UpdateDetails(context.Background(), 11, details)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_AllowedNextStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := newMocks(ctrl).service()
	testCases := []struct {
		status string
		want   []string
	}{
		{status: "pending", want: []string{"cancelled", "paid"}},
		{status: "PAID", want: []string{"shipped"}},
		{status: "shipped", want: []string{"delivered"}},
		{status: "delivered", want: []string{}},
		{status: "cancelled", want: []string{}},
		{status: "lost", want: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.AllowedNextStatuses(tc.status))
		})
	}
}
