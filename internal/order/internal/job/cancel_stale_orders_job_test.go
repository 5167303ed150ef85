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

package job

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ecodeclub/storefront/internal/order/internal/domain"
	ordermocks "github.com/ecodeclub/storefront/internal/order/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCancelStaleOrdersJob_Run(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(svc *ordermocks.MockService)
		wantErr error
	}{
		{
			name: "分批取消",
			mock: func(svc *ordermocks.MockService) {
				gomock.InOrder(
					svc.EXPECT().ListStalePendingOrders(gomock.Any(), 0, 2, gomock.Any()).
						Return([]domain.Order{{ID: 1}, {ID: 2}}, int64(3), nil),
					svc.EXPECT().SetOrderStatus(gomock.Any(), int64(1), "cancelled", int64(0)).
						Return(domain.StatusHistory{}, nil),
					svc.EXPECT().SetOrderStatus(gomock.Any(), int64(2), "cancelled", int64(0)).
						Return(domain.StatusHistory{}, nil),
					svc.EXPECT().ListStalePendingOrders(gomock.Any(), 0, 2, gomock.Any()).
						Return([]domain.Order{{ID: 3}}, int64(1), nil),
					svc.EXPECT().SetOrderStatus(gomock.Any(), int64(3), "cancelled", int64(0)).
						Return(domain.StatusHistory{}, nil),
				)
			},
		},
		{
			name: "跳过已被支付的订单",
			mock: func(svc *ordermocks.MockService) {
				gomock.InOrder(
					svc.EXPECT().ListStalePendingOrders(gomock.Any(), 0, 2, gomock.Any()).
						Return([]domain.Order{{ID: 1}}, int64(1), nil),
					svc.EXPECT().SetOrderStatus(gomock.Any(), int64(1), "cancelled", int64(0)).
						Return(domain.StatusHistory{}, fmt.Errorf("%w: paid -> cancelled", domain.ErrIllegalTransition)),
				)
			},
		},
		{
			name: "一整批都无法取消时结束",
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().ListStalePendingOrders(gomock.Any(), 0, 2, gomock.Any()).
					Return([]domain.Order{{ID: 1}, {ID: 2}}, int64(2), nil)
				svc.EXPECT().SetOrderStatus(gomock.Any(), gomock.Any(), "cancelled", int64(0)).
					Return(domain.StatusHistory{}, domain.ErrIllegalTransition).Times(2)
			},
		},
		{
			name: "查询失败",
			mock: func(svc *ordermocks.MockService) {
				svc.EXPECT().ListStalePendingOrders(gomock.Any(), 0, 2, gomock.Any()).
					Return(nil, int64(0), errors.New("mock db error"))
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := ordermocks.NewMockService(ctrl)
			tc.mock(svc)
			err := NewCancelStaleOrdersJob(svc, 2, 30).Run(context.Background())
			if tc.wantErr != nil {
				assert.ErrorContains(t, err, tc.wantErr.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}
