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
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/storefront/internal/buyer"
	"github.com/ecodeclub/storefront/internal/cart"
	cartmocks "github.com/ecodeclub/storefront/internal/cart/mocks"
	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	"github.com/ecodeclub/storefront/internal/order/internal/errs"
	"github.com/ecodeclub/storefront/internal/order/internal/repository"
	"github.com/ecodeclub/storefront/internal/order/internal/service"
	ordermocks "github.com/ecodeclub/storefront/internal/order/mocks"
	"github.com/ecodeclub/storefront/internal/product"
	"github.com/ecodeclub/storefront/internal/test"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_Checkout(t *testing.T) {
	testCases := []struct {
		name     string
		sess     session.Session
		mock     func(ctrl *gomock.Controller) (*ordermocks.MockService, *cartmocks.MockService)
		wantCode int
		wantResp test.Result[Order]
	}{
		{
			name: "游客下单",
			mock: func(ctrl *gomock.Controller) (*ordermocks.MockService, *cartmocks.MockService) {
				svc := ordermocks.NewMockService(ctrl)
				cartSvc := cartmocks.NewMockService(ctrl)
				cartSvc.EXPECT().Get(gomock.Any(), "bag-1").Return(cart.Cart{
					Lines: []cart.Line{{SKU: "TEE-001", Quantity: 2}},
				}, nil)
				svc.EXPECT().CreateOrderFromCart(gomock.Any(), buyer.Identity{},
					[]domain.CartLine{{SKU: "TEE-001", Quantity: 2}}).
					Return(domain.Order{
						ID:          11,
						BuyerID:     1,
						Status:      domain.StatusPending,
						TotalAmount: decimal.RequireFromString("20"),
						Items: []domain.OrderItem{{
							SKU: "TEE-001", Name: "Tee", Quantity: 2, UnitPrice: decimal.RequireFromString("10"),
						}},
					}, nil)
				return svc, cartSvc
			},
			wantCode: 200,
			wantResp: test.Result[Order]{
				Data: Order{
					ID:          11,
					BuyerID:     1,
					Status:      "pending",
					TotalAmount: "20.00",
					Items: []OrderItem{{
						SKU: "TEE-001", Name: "Tee", Quantity: 2, UnitPrice: "10.00", LineTotal: "20.00",
					}},
				},
			},
		},
		{
			name: "登录用户下单",
			sess: session.NewMemorySession(session.Claims{
				Uid:  5,
				Data: map[string]string{"email": "alice@example.com", "name": "Alice"},
			}),
			mock: func(ctrl *gomock.Controller) (*ordermocks.MockService, *cartmocks.MockService) {
				svc := ordermocks.NewMockService(ctrl)
				cartSvc := cartmocks.NewMockService(ctrl)
				cartSvc.EXPECT().Get(gomock.Any(), "bag-1").Return(cart.Cart{
					Lines: []cart.Line{{SKU: "TEE-001", Quantity: 1}},
				}, nil)
				svc.EXPECT().CreateOrderFromCart(gomock.Any(), buyer.Identity{
					Authenticated: true, Email: "alice@example.com", DisplayName: "Alice",
				}, gomock.Any()).Return(domain.Order{
					ID: 12, BuyerID: 7, Status: domain.StatusPending, TotalAmount: decimal.RequireFromString("10"),
				}, nil)
				return svc, cartSvc
			},
			wantCode: 200,
			wantResp: test.Result[Order]{
				Data: Order{ID: 12, BuyerID: 7, Status: "pending", TotalAmount: "10.00"},
			},
		},
		{
			name: "购物袋为空",
			mock: func(ctrl *gomock.Controller) (*ordermocks.MockService, *cartmocks.MockService) {
				svc := ordermocks.NewMockService(ctrl)
				cartSvc := cartmocks.NewMockService(ctrl)
				cartSvc.EXPECT().Get(gomock.Any(), "bag-1").Return(cart.Cart{}, nil)
				svc.EXPECT().CreateOrderFromCart(gomock.Any(), gomock.Any(), []domain.CartLine{}).
					Return(domain.Order{}, service.ErrEmptyCart)
				return svc, cartSvc
			},
			wantCode: 200,
			wantResp: test.Result[Order]{Code: errs.EmptyCart.Code, Msg: errs.EmptyCart.Msg},
		},
		{
			name: "商品不存在",
			mock: func(ctrl *gomock.Controller) (*ordermocks.MockService, *cartmocks.MockService) {
				svc := ordermocks.NewMockService(ctrl)
				cartSvc := cartmocks.NewMockService(ctrl)
				cartSvc.EXPECT().Get(gomock.Any(), "bag-1").Return(cart.Cart{
					Lines: []cart.Line{{SKU: "NOPE", Quantity: 1}},
				}, nil)
				svc.EXPECT().CreateOrderFromCart(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.Order{}, product.ErrProductNotFound)
				return svc, cartSvc
			},
			wantCode: 200,
			wantResp: test.Result[Order]{Code: errs.ProductNotFound.Code, Msg: errs.ProductNotFound.Msg},
		},
		{
			name: "读取购物袋失败",
			mock: func(ctrl *gomock.Controller) (*ordermocks.MockService, *cartmocks.MockService) {
				svc := ordermocks.NewMockService(ctrl)
				cartSvc := cartmocks.NewMockService(ctrl)
				cartSvc.EXPECT().Get(gomock.Any(), "bag-1").Return(cart.Cart{}, errors.New("mock redis error"))
				return svc, cartSvc
			},
			wantCode: 500,
			wantResp: test.Result[Order]{Code: errs.SystemError.Code, Msg: errs.SystemError.Msg},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, cartSvc := tc.mock(ctrl)
			server := gin.New()
			if tc.sess != nil {
				server.Use(func(ctx *gin.Context) {
					ctx.Set("_session", tc.sess)
				})
			}
			NewHandler(svc, cartSvc, nil).PublicRoutes(server)

			req, err := http.NewRequest(http.MethodPost, "/order/checkout", iox.NewJSONReader(CheckoutReq{}))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			req.Header.Set(cart.IDHeader, "bag-1")
			recorder := test.NewJSONResponseRecorder[Order]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantCode, recorder.Code)
			assert.Equal(t, tc.wantResp, recorder.MustScan())
		})
	}
}

// requestIDCache 只实现下单去重用到的 SetNX 与 Delete
type requestIDCache struct {
	ecache.Cache
	keys map[string]struct{}
}

func (c *requestIDCache) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	if _, ok := c.keys[key]; ok {
		return false, nil
	}
	c.keys[key] = struct{}{}
	return true, nil
}

func (c *requestIDCache) Delete(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := c.keys[k]; ok {
			delete(c.keys, k)
			n++
		}
	}
	return n, nil
}

func TestHandler_CheckoutRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := ordermocks.NewMockService(ctrl)
	cartSvc := cartmocks.NewMockService(ctrl)
	cartSvc.EXPECT().Get(gomock.Any(), "bag-1").Return(cart.Cart{
		Lines: []cart.Line{{SKU: "TEE-001", Quantity: 1}},
	}, nil).Times(3)
	gomock.InOrder(
		svc.EXPECT().CreateOrderFromCart(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.Order{}, product.ErrProductNotFound),
		svc.EXPECT().CreateOrderFromCart(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.Order{}, errors.New("mock db error")),
		svc.EXPECT().CreateOrderFromCart(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.Order{ID: 13, Status: domain.StatusPending, TotalAmount: decimal.RequireFromString("10")}, nil),
	)

	cache := &requestIDCache{keys: map[string]struct{}{}}
	server := gin.New()
	NewHandler(svc, cartSvc, cache).PublicRoutes(server)
	checkout := func() (int, test.Result[Order]) {
		req, err := http.NewRequest(http.MethodPost, "/order/checkout", iox.NewJSONReader(CheckoutReq{RequestID: "req-1"}))
		require.NoError(t, err)
		req.Header.Set("content-type", "application/json")
		req.Header.Set(cart.IDHeader, "bag-1")
		recorder := test.NewJSONResponseRecorder[Order]()
		server.ServeHTTP(recorder, req)
		return recorder.Code, recorder.MustScan()
	}

	// 失败之后同一个请求ID可以重试
	code, res := checkout()
	assert.Equal(t, 200, code)
	assert.Equal(t, errs.ProductNotFound.Code, res.Code)
	code, res = checkout()
	assert.Equal(t, 500, code)
	assert.Equal(t, errs.SystemError.Code, res.Code)
	assert.Empty(t, cache.keys)

	code, res = checkout()
	assert.Equal(t, 200, code)
	assert.Equal(t, int64(13), res.Data.ID)
	assert.Len(t, cache.keys, 1)

	code, res = checkout()
	assert.Equal(t, 200, code)
	assert.Equal(t, errs.DuplicateRequest.Code, res.Code)
}

func TestHandler_Detail(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		mock     func(ctrl *gomock.Controller) *ordermocks.MockService
		wantResp test.Result[Order]
	}{
		{
			name: "订单详情",
			path: "/order/11",
			mock: func(ctrl *gomock.Controller) *ordermocks.MockService {
				svc := ordermocks.NewMockService(ctrl)
				svc.EXPECT().FindOrder(gomock.Any(), int64(11)).Return(domain.Order{
					ID: 11, Status: domain.StatusPaid, TotalAmount: decimal.RequireFromString("20"),
				}, nil)
				svc.EXPECT().ListPayments(gomock.Any(), int64(11)).Return([]domain.Payment{{
					ID: 1, Provider: "mock", Method: domain.PaymentMethodCard,
					Status: domain.PaymentStatusSuccessful, Amount: decimal.RequireFromString("20"), ProviderRef: "ref-1",
				}}, nil)
				svc.EXPECT().ListHistories(gomock.Any(), int64(11)).Return([]domain.StatusHistory{{
					From: domain.StatusPending, To: domain.StatusPaid, Ctime: 100,
				}}, nil)
				return svc
			},
			wantResp: test.Result[Order]{
				Data: Order{
					ID:          11,
					Status:      "paid",
					TotalAmount: "20.00",
					Payments: []Payment{{
						ID: 1, Provider: "mock", Method: "card", Status: "successful", Amount: "20.00", ProviderRef: "ref-1",
					}},
					Histories: []StatusHistory{{From: "pending", To: "paid", Ctime: 100}},
				},
			},
		},
		{
			name: "订单不存在",
			path: "/order/404",
			mock: func(ctrl *gomock.Controller) *ordermocks.MockService {
				svc := ordermocks.NewMockService(ctrl)
				svc.EXPECT().FindOrder(gomock.Any(), int64(404)).Return(domain.Order{}, repository.ErrOrderNotFound)
				svc.EXPECT().ListPayments(gomock.Any(), int64(404)).Return(nil, nil)
				svc.EXPECT().ListHistories(gomock.Any(), int64(404)).Return(nil, nil)
				return svc
			},
			wantResp: test.Result[Order]{Code: errs.OrderNotFound.Code, Msg: errs.OrderNotFound.Msg},
		},
		{
			name: "非法订单ID",
			path: "/order/abc",
			mock: func(ctrl *gomock.Controller) *ordermocks.MockService {
				return ordermocks.NewMockService(ctrl)
			},
			wantResp: test.Result[Order]{Code: errs.OrderNotFound.Code, Msg: errs.OrderNotFound.Msg},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := gin.New()
			NewHandler(tc.mock(ctrl), cartmocks.NewMockService(ctrl), nil).PublicRoutes(server)

			req, err := http.NewRequest(http.MethodGet, tc.path, nil)
			require.NoError(t, err)
			recorder := test.NewJSONResponseRecorder[Order]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, 200, recorder.Code)
			assert.Equal(t, tc.wantResp, recorder.MustScan())
		})
	}
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	testCases := []struct {
		name     string
		req      UpdateStatusReq
		mock     func(ctrl *gomock.Controller) *ordermocks.MockService
		wantCode int
		wantResp test.Result[StatusHistory]
	}{
		{
			name: "员工发货",
			req:  UpdateStatusReq{ToStatus: "shipped"},
			mock: func(ctrl *gomock.Controller) *ordermocks.MockService {
				svc := ordermocks.NewMockService(ctrl)
				svc.EXPECT().SetOrderStatus(gomock.Any(), int64(11), "shipped", int64(3)).
					Return(domain.StatusHistory{
						OrderID: 11, From: domain.StatusPaid, To: domain.StatusShipped, ActorID: 3, Ctime: 100,
					}, nil)
				return svc
			},
			wantCode: 200,
			wantResp: test.Result[StatusHistory]{
				Data: StatusHistory{From: "paid", To: "shipped", ActorID: 3, Ctime: 100},
			},
		},
		{
			name: "非法变更",
			req:  UpdateStatusReq{ToStatus: "delivered"},
			mock: func(ctrl *gomock.Controller) *ordermocks.MockService {
				svc := ordermocks.NewMockService(ctrl)
				svc.EXPECT().SetOrderStatus(gomock.Any(), int64(11), "delivered", int64(3)).
					Return(domain.StatusHistory{}, domain.ErrIllegalTransition)
				return svc
			},
			wantCode: 200,
			wantResp: test.Result[StatusHistory]{Code: errs.IllegalTransition.Code, Msg: errs.IllegalTransition.Msg},
		},
		{
			name: "未知状态",
			req:  UpdateStatusReq{ToStatus: "lost"},
			mock: func(ctrl *gomock.Controller) *ordermocks.MockService {
				svc := ordermocks.NewMockService(ctrl)
				svc.EXPECT().SetOrderStatus(gomock.Any(), int64(11), "lost", int64(3)).
					Return(domain.StatusHistory{}, domain.ErrUnknownStatus)
				return svc
			},
			wantCode: 200,
			wantResp: test.Result[StatusHistory]{Code: errs.UnknownOrderStatus.Code, Msg: errs.UnknownOrderStatus.Msg},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := gin.New()
			server.Use(func(ctx *gin.Context) {
				ctx.Set("_session", session.NewMemorySession(session.Claims{
					Uid:  3,
					Data: map[string]string{"staff": "true"},
				}))
			})
			NewAdminHandler(tc.mock(ctrl)).PrivateRoutes(server)

			req, err := http.NewRequest(http.MethodPost, "/order/11/status", iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[StatusHistory]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, tc.wantCode, recorder.Code)
			assert.Equal(t, tc.wantResp, recorder.MustScan())
		})
	}
}

func TestAdminHandler_NextStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := ordermocks.NewMockService(ctrl)
	svc.EXPECT().FindOrder(gomock.Any(), int64(11)).Return(domain.Order{ID: 11, Status: domain.StatusPending}, nil)
	svc.EXPECT().AllowedNextStatuses("pending").Return([]string{"cancelled", "paid"})

	server := gin.New()
	NewAdminHandler(svc).PrivateRoutes(server)
	req, err := http.NewRequest(http.MethodGet, "/order/11/next-statuses", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[NextStatusesResp]()
	server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	assert.Equal(t, NextStatusesResp{Status: "pending", Next: []string{"cancelled", "paid"}}, recorder.MustScan().Data)
}
